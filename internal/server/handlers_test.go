package server

import (
	"bytes"
	"context"
	"encoding/json"
	stdio "io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starpath/pkg/cache"
	errs "github.com/matzehuels/starpath/pkg/errors"
	"github.com/matzehuels/starpath/pkg/io"
	"github.com/matzehuels/starpath/pkg/pipeline"
	"github.com/matzehuels/starpath/pkg/store"
)

func testMap() *io.Document {
	return &io.Document{
		Nodes: []io.Node{{Label: "A"}, {Label: "B"}, {Label: "C"}, {Label: "D"}, {Label: "E"}},
		Edges: []io.Edge{
			{Source: 0, Target: 1, Cost: 1},
			{Source: 1, Target: 3, Cost: 1},
			{Source: 0, Target: 2, Cost: 2},
			{Source: 2, Target: 3, Cost: 2},
		},
	}
}

func newTestHandler(t *testing.T, defaultMap *io.Document) http.Handler {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(stdio.Discard)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, st, logger)
	t.Cleanup(func() { runner.Close() })
	return NewRouter(logger, Dependencies{Runner: runner, DefaultMap: defaultMap})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf).WithContext(context.Background())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestCreateRouteFound(t *testing.T) {
	h := newTestHandler(t, testMap())

	rec := do(t, h, http.MethodPost, "/v1/routes", routeRequest{Source: "A", Target: "D"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	res := decode[pipeline.Result](t, rec)
	if !res.Found || res.Cost != 2 || len(res.Path) != 3 || res.Path[1] != "B" {
		t.Errorf("result = %+v, want A -> B -> D cost 2", res)
	}
}

func TestCreateRouteNotFound(t *testing.T) {
	h := newTestHandler(t, testMap())

	rec := do(t, h, http.MethodPost, "/v1/routes", routeRequest{Source: "A", Target: "E"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for unreachable target", rec.Code)
	}
	if res := decode[pipeline.Result](t, rec); res.Found {
		t.Errorf("result = %+v, want found false", res)
	}
}

func TestCreateRouteInlineMap(t *testing.T) {
	h := newTestHandler(t, nil)

	inline := &io.Document{
		Nodes: []io.Node{{Label: "X"}, {Label: "Y"}},
		Edges: []io.Edge{{Source: 0, Target: 1, Cost: 7}},
	}
	rec := do(t, h, http.MethodPost, "/v1/routes", routeRequest{Source: "Y", Target: "X", Map: inline})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if res := decode[pipeline.Result](t, rec); !res.Found || res.Cost != 7 {
		t.Errorf("result = %+v, want cost 7", res)
	}
}

func TestCreateRouteErrors(t *testing.T) {
	h := newTestHandler(t, testMap())
	noMap := newTestHandler(t, nil)

	badMap := &io.Document{
		Nodes: []io.Node{{Label: "X"}},
		Edges: []io.Edge{{Source: 0, Target: 5, Cost: 1}},
	}

	tests := []struct {
		name    string
		handler http.Handler
		body    any
		status  int
		code    errs.Code
	}{
		{"unknown planet", h, routeRequest{Source: "A", Target: "Vulcan"}, http.StatusNotFound, errs.ErrCodeUnknownNode},
		{"empty source", h, routeRequest{Source: "", Target: "A"}, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"malformed json", h, `{"source":`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"unknown field", h, `{"source":"A","target":"B","via":"C"}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"invalid map", h, routeRequest{Source: "X", Target: "X", Map: badMap}, http.StatusBadRequest, errs.ErrCodeInvalidGraph},
		{"no map", noMap, routeRequest{Source: "A", Target: "B"}, http.StatusBadRequest, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, tt.handler, http.MethodPost, "/v1/routes", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if e := decode[errorResponse](t, rec); e.Code != tt.code {
				t.Errorf("code = %s, want %s", e.Code, tt.code)
			}
		})
	}
}

func TestRouteLookupAndHistory(t *testing.T) {
	h := newTestHandler(t, testMap())

	created := decode[pipeline.Result](t, do(t, h, http.MethodPost, "/v1/routes", routeRequest{Source: "A", Target: "D"}))
	do(t, h, http.MethodPost, "/v1/routes", routeRequest{Source: "B", Target: "C"})

	rec := do(t, h, http.MethodGet, "/v1/routes/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get route status = %d", rec.Code)
	}
	if route := decode[store.Route](t, rec); route.ID != created.ID || route.Cost != 2 {
		t.Errorf("route = %+v", route)
	}

	rec = do(t, h, http.MethodGet, "/v1/routes/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing route status = %d, want 404", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/v1/history?limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	if hist := decode[historyResponse](t, rec); hist.Count != 1 || len(hist.Routes) != 1 {
		t.Errorf("history = %+v, want one route", hist)
	}

	rec = do(t, h, http.MethodGet, "/v1/history", nil)
	if hist := decode[historyResponse](t, rec); hist.Count != 2 {
		t.Errorf("history count = %d, want 2", hist.Count)
	}

	for _, bad := range []string{"0", "-1", "abc", "100000"} {
		if rec := do(t, h, http.MethodGet, "/v1/history?limit="+bad, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s status = %d, want 400", bad, rec.Code)
		}
	}
}

func TestEmptyHistory(t *testing.T) {
	h := newTestHandler(t, testMap())

	rec := do(t, h, http.MethodGet, "/v1/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"routes\":[],\"count\":0}\n" {
		t.Errorf("body = %q, want empty routes array", got)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decode[map[string]any](t, rec); body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestRequestID(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("response should carry a generated request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "trace-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "trace-123" {
		t.Errorf("request ID = %q, want echoed trace-123", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, testMap())

	rec := do(t, h, http.MethodGet, "/v1/routes", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/routes status = %d, want 405", rec.Code)
	}
}
