package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dishes/internal/correlation"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

func TestListMenu(t *testing.T) {
	srv := newMenuServer(t, "Dumplings", "Mapo Tofu")

	rec, resp := do(t, srv, http.MethodGet, "/api/menu", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Dumplings", "Mapo Tofu"}, resp.Data)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
}

func TestListMenu_EmptyEncodesArray(t *testing.T) {
	srv := newMenuServer(t)

	rec, _ := do(t, srv, http.MethodGet, "/api/menu", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, rec.Body.String())
}

func TestAddDish(t *testing.T) {
	srv := newMenuServer(t, "Dumplings")

	rec, resp := do(t, srv, http.MethodPost, "/api/menu", `{"name":"  Mapo Tofu "}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Dumplings", "Mapo Tofu"}, resp.Data)
	assert.Contains(t, resp.Message, "Mapo Tofu")
}

func TestAddDish_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"blank name", `{"name":"   "}`, http.StatusBadRequest},
		{"missing name", `{}`, http.StatusBadRequest},
		{"duplicate", `{"name":"Dumplings"}`, http.StatusConflict},
		{"malformed body", `{"name":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newMenuServer(t, "Dumplings")

			rec, resp := do(t, srv, http.MethodPost, "/api/menu", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
			assert.False(t, resp.Refresh)
		})
	}
}

func TestRemoveDish(t *testing.T) {
	srv := newMenuServer(t, "Dumplings", "Mapo Tofu", "Fried Rice")

	rec, resp := do(t, srv, http.MethodDelete, "/api/menu/Mapo%20Tofu", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Dumplings", "Fried Rice"}, resp.Data)
}

func TestRemoveDish_NotFound(t *testing.T) {
	srv := newMenuServer(t, "Dumplings")

	rec, resp := do(t, srv, http.MethodDelete, "/api/menu/Noodles", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Noodles")
}

func TestRemoveAndRenameEscapedNames(t *testing.T) {
	names := []string{"50% off", "a%20b", "100%", "a/b", "Mapo Tofu", "宫保鸡丁"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			srv := newMenuServer(t, name, "Other")

			rec, resp := do(t, srv, http.MethodPut, "/api/menu/"+url.PathEscape(name), `{"new_name":"Renamed"}`)
			require.Equal(t, http.StatusOK, rec.Code, resp.Message)
			assert.Equal(t, []string{"Other", "Renamed"}, resp.Data)

			rec, resp = do(t, srv, http.MethodPut, "/api/menu/Renamed", `{"new_name":`+quoteJSON(t, name)+`}`)
			require.Equal(t, http.StatusOK, rec.Code, resp.Message)
			assert.Equal(t, []string{"Other", name}, resp.Data)

			rec, resp = do(t, srv, http.MethodDelete, "/api/menu/"+url.PathEscape(name), "")
			require.Equal(t, http.StatusOK, rec.Code, resp.Message)
			assert.Equal(t, []string{"Other"}, resp.Data)
		})
	}
}

func TestRemoveDish_MalformedEscape(t *testing.T) {
	srv := newMenuServer(t, "A")

	req := httptest.NewRequest(http.MethodDelete, "/api/menu/x", nil)
	req.URL.RawPath = "/api/menu/%zz"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func quoteJSON(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}

func TestRenameDish(t *testing.T) {
	srv := newMenuServer(t, "Dumplings", "Mapo Tofu", "Fried Rice")

	rec, resp := do(t, srv, http.MethodPut, "/api/menu/Dumplings", `{"new_name":"Pork Dumplings"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Mapo Tofu", "Fried Rice", "Pork Dumplings"}, resp.Data)
}

func TestRenameDish_Failures(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		menu   []string
	}{
		{"unknown old name", "/api/menu/Noodles", `{"new_name":"Ramen"}`, []string{"Dumplings", "Fried Rice"}},
		{"new name taken", "/api/menu/Dumplings", `{"new_name":"Fried Rice"}`, []string{"Fried Rice", "Dumplings"}},
		{"blank new name", "/api/menu/Dumplings", `{"new_name":" "}`, []string{"Fried Rice", "Dumplings"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newMenuServer(t, "Dumplings", "Fried Rice")

			rec, resp := do(t, srv, http.MethodPut, tt.target, tt.body)

			assert.Equal(t, http.StatusConflict, rec.Code)
			assert.False(t, resp.Success)
			assert.True(t, resp.Refresh)

			_, list := do(t, srv, http.MethodGet, "/api/menu", "")
			assert.Equal(t, tt.menu, list.Data)
		})
	}
}

func TestSample(t *testing.T) {
	srv := newMenuServer(t, "A", "B", "C", "D")

	rec, resp := do(t, srv, http.MethodPost, "/api/random", `{"count":3}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 3)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 3, *resp.Count)
	assert.Subset(t, []string{"A", "B", "C", "D"}, resp.Data)
}

func TestSample_DefaultsToOne(t *testing.T) {
	srv := newMenuServer(t, "A", "B", "C")

	rec, resp := do(t, srv, http.MethodPost, "/api/random", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, 1)
}

func TestSample_ClampsToMenuSize(t *testing.T) {
	srv := newMenuServer(t, "A", "B")

	_, resp := do(t, srv, http.MethodPost, "/api/random", `{"count":10}`)

	assert.ElementsMatch(t, []string{"A", "B"}, resp.Data)
}

func TestSample_InvalidCount(t *testing.T) {
	srv := newMenuServer(t, "A")

	for _, body := range []string{`{"count":0}`, `{"count":-2}`, `{"count":"two"}`} {
		rec, resp := do(t, srv, http.MethodPost, "/api/random", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.False(t, resp.Success, body)
	}
}

func TestErrorMapping(t *testing.T) {
	persist := fmt.Errorf("%w: %w", types.ErrPersist, errors.New("disk full"))
	tests := []struct {
		name    string
		err     error
		status  int
		refresh bool
	}{
		{"persist failure", persist, http.StatusInternalServerError, false},
		{"inconsistent state", &types.InconsistentStateError{
			Old: "A", New: "B", Cause: types.ErrDuplicate, CompensationErr: persist,
		}, http.StatusInternalServerError, true},
		{"rename persist failure", &types.RenameError{
			Old: "A", New: "B", Stage: types.RenameStageRemove, Cause: persist,
		}, http.StatusInternalServerError, true},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(":0", &mockMenu{err: tt.err})

			rec, resp := do(t, srv, http.MethodPut, "/api/menu/A", `{"new_name":"B"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.refresh, resp.Refresh)
			assert.NotContains(t, resp.Message, "disk full")
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newMenuServer(t)

	rec, resp := do(t, srv, http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestCorrelationHeader(t *testing.T) {
	srv := newMenuServer(t)

	rec, _ := do(t, srv, http.MethodGet, "/api/menu", "")

	assert.NotEmpty(t, rec.Header().Get(correlation.Header))
}

func TestCorrelationHeader_ReusesClientID(t *testing.T) {
	srv := newMenuServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	req.Header.Set(correlation.Header, "client-7")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "client-7", rec.Header().Get(correlation.Header))
}
