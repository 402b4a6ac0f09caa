package httpserver

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/mesh-intelligence/dishes/pkg/types"
)

type addRequest struct {
	Name string `json:"name"`
}

type renameRequest struct {
	NewName string `json:"new_name"`
}

type sampleRequest struct {
	Count *int `json:"count"`
}

func (s *Server) registerMenuRoutes() {
	api := s.echo.Group("/api")
	api.GET("/menu", s.handleList)
	api.POST("/menu", s.handleAdd)
	api.DELETE("/menu/:name", s.handleRemove)
	api.PUT("/menu/:name", s.handleRename)
	api.POST("/random", s.handleSample)
}

func (s *Server) handleList(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessWithCount(s.menu.List()))
}

func (s *Server) handleAdd(c echo.Context) error {
	var req addRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", err)
	}

	name := types.NormalizeName(req.Name)
	if err := s.menu.Add(c.Request().Context(), name); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Success(s.menu.List(), fmt.Sprintf("added %q", name)))
}

func (s *Server) handleRemove(c echo.Context) error {
	name, err := pathName(c)
	if err != nil {
		return err
	}

	if err := s.menu.Remove(c.Request().Context(), name); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Success(s.menu.List(), fmt.Sprintf("removed %q", name)))
}

func (s *Server) handleRename(c echo.Context) error {
	oldName, err := pathName(c)
	if err != nil {
		return err
	}

	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", err)
	}

	newName := types.NormalizeName(req.NewName)
	if err := s.menu.Rename(c.Request().Context(), oldName, newName); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Success(s.menu.List(), fmt.Sprintf("renamed %q to %q", oldName, newName)))
}

// handleSample draws one dish when the body omits count.
func (s *Server) handleSample(c echo.Context) error {
	var req sampleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", err)
	}

	count := 1
	if req.Count != nil {
		count = *req.Count
	}

	picked, err := s.menu.Sample(count)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, SuccessWithCount(picked))
}

// pathName returns the trimmed :name parameter. Echo hands back the escaped
// segment only when the request carries a RawPath; otherwise the parameter
// is already decoded and a literal "%" must be kept.
func pathName(c echo.Context) (string, error) {
	raw := c.Param("name")
	if c.Request().URL.RawPath == "" {
		return types.NormalizeName(raw), nil
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", badRequest("invalid dish name in path", err)
	}
	return types.NormalizeName(name), nil
}
