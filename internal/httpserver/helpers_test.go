package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dishes/internal/menu"
	"github.com/mesh-intelligence/dishes/internal/store"
)

// mockMenu returns the configured error from every mutation.
type mockMenu struct {
	dishes []string
	err    error
}

func (m *mockMenu) List() []string                               { return m.dishes }
func (m *mockMenu) Count() int                                   { return len(m.dishes) }
func (m *mockMenu) Add(context.Context, string) error            { return m.err }
func (m *mockMenu) Remove(context.Context, string) error         { return m.err }
func (m *mockMenu) Rename(context.Context, string, string) error { return m.err }
func (m *mockMenu) Sample(int) ([]string, error)                 { return nil, m.err }

type response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    []string `json:"data"`
	Count   *int     `json:"count"`
	Refresh bool     `json:"refresh"`
}

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newMenuServer(t *testing.T, dishes ...string) *Server {
	t.Helper()
	svc, err := menu.New(context.Background(), store.NewMemory(dishes...),
		menu.WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	return NewServer(":0", svc)
}

func do(t *testing.T, srv *Server, method, target, body string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}
