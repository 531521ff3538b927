package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"explorerScope/internal/explorer"
	"explorerScope/internal/model"
	"explorerScope/internal/search"
	"explorerScope/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubExplorer classifies for real and serves fixed records.
type stubExplorer struct {
	err       error
	lastPage  int
	lastKind  search.Kind
	blocks    model.Page[model.BlockSummary]
	ibcClient model.Page[model.IbcClientSummary]
}

func (s *stubExplorer) Search(ctx context.Context, raw string) (explorer.Result, error) {
	query, err := search.Classify(raw)
	if err != nil {
		return explorer.Result{}, err
	}
	return s.resolve(query)
}

func (s *stubExplorer) SearchAs(ctx context.Context, raw string, kind search.Kind) (explorer.Result, error) {
	s.lastKind = kind
	query, err := search.ClassifyAs(raw, kind)
	if err != nil {
		return explorer.Result{}, err
	}
	return s.resolve(query)
}

func (s *stubExplorer) resolve(query search.Query) (explorer.Result, error) {
	if s.err != nil {
		return explorer.Result{}, s.err
	}
	return explorer.Result{Query: query, Record: map[string]string{"id": query.Value()}}, nil
}

func (s *stubExplorer) Blocks(ctx context.Context, page int) (model.Page[model.BlockSummary], error) {
	s.lastPage = page
	return s.blocks, s.err
}

func (s *stubExplorer) IbcClients(ctx context.Context, page int) (model.Page[model.IbcClientSummary], error) {
	s.lastPage = page
	return s.ibcClient, s.err
}

func serve(t *testing.T, router *Router, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestSearchRoute(t *testing.T) {
	router := Init(&stubExplorer{}, Config{}, nil)
	defer router.Close()

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := serve(t, router, method, "/api/search?q=42")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body %s", method, rec.Code, rec.Body.String())
		}
		want := `{"kind":"BLOCK_HEIGHT","value":"42","result":{"id":"42"}}`
		if strings.TrimSpace(rec.Body.String()) != want {
			t.Fatalf("%s: body = %s, want %s", method, rec.Body.String(), want)
		}
		if rec.Header().Get(requestIDHeader) == "" {
			t.Fatalf("%s: expected request id header", method)
		}
	}
}

func TestSearchRouteErrors(t *testing.T) {
	router := Init(&stubExplorer{}, Config{}, nil)
	defer router.Close()

	rec := serve(t, router, http.MethodGet, "/api/search?q=not+a+thing")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if body := decodeError(t, rec); body.Code != CodeUnsupportedQuery {
		t.Fatalf("code = %s", body.Code)
	}

	missing := Init(&stubExplorer{err: storage.ErrNotFound}, Config{}, nil)
	defer missing.Close()
	if rec := serve(t, missing, http.MethodGet, "/api/search?q=42"); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	down := Init(&stubExplorer{err: errors.New("dial tcp: refused")}, Config{}, nil)
	defer down.Close()
	if rec := serve(t, down, http.MethodGet, "/api/search?q=42"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestLookupRoutesRestrictKind(t *testing.T) {
	stub := &stubExplorer{}
	router := Init(stub, Config{}, nil)
	defer router.Close()

	cases := []struct {
		target string
		kind   search.Kind
		status int
	}{
		{target: "/api/block?q=42", kind: search.KindBlockHeight, status: http.StatusOK},
		{target: "/api/transaction?q=42", kind: search.KindTxHash, status: http.StatusUnprocessableEntity},
		{target: "/api/transaction?q=0x" + strings.Repeat("ab", 32), kind: search.KindTxHash, status: http.StatusOK},
		{target: "/api/ibc/client?q=07-tendermint-0", kind: search.KindIbcClient, status: http.StatusOK},
		{target: "/api/ibc/channel?q=channel-0", kind: search.KindIbcChannel, status: http.StatusOK},
		{target: "/api/ibc/connection?q=connection-0", kind: search.KindIbcConnection, status: http.StatusOK},
		{target: "/api/ibc/connection?q=channel-0", kind: search.KindIbcConnection, status: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		rec := serve(t, router, http.MethodGet, tc.target)
		if rec.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d (%s)", tc.target, rec.Code, tc.status, rec.Body.String())
		}
		if stub.lastKind != tc.kind {
			t.Fatalf("%s: kind = %s, want %s", tc.target, stub.lastKind, tc.kind)
		}
	}

	rec := serve(t, router, http.MethodGet, "/api/block?q=42")
	if strings.TrimSpace(rec.Body.String()) != `{"id":"42"}` {
		t.Fatalf("lookup should return the bare record, got %s", rec.Body.String())
	}
}

func TestListRoutes(t *testing.T) {
	stub := &stubExplorer{
		blocks: model.Page[model.BlockSummary]{
			Pages:   3,
			Results: []model.BlockSummary{{Height: 42, CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}},
		},
		ibcClient: model.Page[model.IbcClientSummary]{Pages: 1, Results: []model.IbcClientSummary{}},
	}
	router := Init(stub, Config{}, nil)
	defer router.Close()

	rec := serve(t, router, http.MethodGet, "/api/blocks?page=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.lastPage != 2 {
		t.Fatalf("page = %d, want 2", stub.lastPage)
	}
	want := `{"pages":3,"results":[{"height":42,"created_at":"2024-03-01T10:00:00Z"}]}`
	if strings.TrimSpace(rec.Body.String()) != want {
		t.Fatalf("body = %s, want %s", rec.Body.String(), want)
	}

	rec = serve(t, router, http.MethodGet, "/api/ibc/clients")
	if rec.Code != http.StatusOK || stub.lastPage != 0 {
		t.Fatalf("status = %d page = %d", rec.Code, stub.lastPage)
	}

	rec = serve(t, router, http.MethodGet, "/api/blocks?page=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeError(t, rec); body.Code != CodeBadRequest {
		t.Fatalf("code = %s", body.Code)
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	healthy := Init(&stubExplorer{}, Config{Metrics: true}, nil)
	defer healthy.Close()

	if rec := serve(t, healthy, http.MethodGet, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	rec := serve(t, healthy, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("metrics status = %d", rec.Code)
	}

	unhealthy := Init(&stubExplorer{}, Config{Health: func(context.Context) error { return errors.New("down") }}, nil)
	defer unhealthy.Close()
	if rec := serve(t, unhealthy, http.MethodGet, "/healthz"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("healthz status = %d, want 503", rec.Code)
	}
	if rec := serve(t, unhealthy, http.MethodGet, "/metrics"); rec.Code != http.StatusNotFound {
		t.Fatalf("metrics should be disabled, got %d", rec.Code)
	}
}

func TestCorsPreflight(t *testing.T) {
	router := Init(&stubExplorer{}, Config{}, nil)
	defer router.Close()

	req := httptest.NewRequest(http.MethodOptions, "/api/search?q=1", nil)
	req.Header.Set("Origin", "https://explorer.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing allow-origin header")
	}
}
