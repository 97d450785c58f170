package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/digits"
	"github.com/aretw0/digits/pkg/domain"
	"github.com/aretw0/digits/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingEngine returns err from every call.
type failingEngine struct{ err error }

func (f failingEngine) Solve(context.Context, int, []int, bool) (*domain.Result, error) {
	return nil, f.err
}
func (f failingEngine) Targets(context.Context, []int) (*domain.Result, error) {
	return nil, f.err
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSolve(t *testing.T) {
	h := NewHandler(digits.New())

	w := do(t, h, "POST", "/solve", `{"target": 24, "operands": [4, 6, 8, 2]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var result domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.KindSolve, result.Kind)
	assert.Equal(t, [][]string{{"4*6=24"}}, result.Solutions)
}

func TestSolve_ZeroTargetIsValid(t *testing.T) {
	h := NewHandler(digits.New())

	w := do(t, h, "POST", "/solve", `{"target": 0, "operands": [5, 5], "all": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"target":0`)
	assert.Contains(t, w.Body.String(), `"solutions":[]`)

	var result domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Empty(t, result.Solutions)
	assert.True(t, result.All)
}

func TestTargets(t *testing.T) {
	h := NewHandler(digits.New())

	w := do(t, h, "POST", "/targets", `{"operands": [2, 3]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, []int{-1, 1, 2, 3, 5, 6}, result.Values)
}

func TestBadRequests(t *testing.T) {
	h := NewHandler(digits.New())

	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/solve", `{"target": `},
		{"missing target", "/solve", `{"operands": [1, 2]}`},
		{"missing operands", "/solve", `{"target": 3}`},
		{"empty operands", "/targets", `{"operands": []}`},
		{"unknown field", "/targets", `{"operands": [1, 2], "foo": 1}`},
		{"fractional operand", "/targets", `{"operands": [1.5, 2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, w.Header().Get(RequestIDHeader), resp.RequestID)
		})
	}
}

func TestTooManyOperands(t *testing.T) {
	h := NewHandler(digits.New(digits.WithMaxOperands(2)))

	w := do(t, h, "POST", "/targets", `{"operands": [1, 2, 3]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "too many operands")
}

func TestEngineFailure(t *testing.T) {
	h := NewHandler(failingEngine{err: errors.New("boom")})

	w := do(t, h, "POST", "/solve", `{"target": 1, "operands": [1, 2]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "boom")
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := NewHandler(digits.New())

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestInfo(t *testing.T) {
	w := do(t, NewHandler(digits.New()), "GET", "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"app":"digits-http"`)
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, NewHandler(digits.New()), "OPTIONS", "/solve", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics()
	eng := digits.New(digits.WithLifecycleHooks(metrics.Hooks()))
	h := NewHandler(eng, WithMetrics(metrics.Handler()))

	require.Equal(t, http.StatusOK, do(t, h, "POST", "/targets", `{"operands": [2, 3]}`).Code)

	w := do(t, h, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `digits_queries_total{cache="miss",kind="targets"} 1`)

	// Without the option the route does not exist.
	w = do(t, NewHandler(eng), "GET", "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
