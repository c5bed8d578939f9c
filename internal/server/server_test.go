package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"complaintfinder/internal/config"
	"complaintfinder/internal/mapping"
	"complaintfinder/internal/resolver"
	"complaintfinder/internal/store"
)

// stubGateway answers every query with fixed results.
type stubGateway struct {
	count      int
	categories []string
}

func (g stubGateway) CountByCategory(context.Context, string) (int, error) {
	return g.count, nil
}

func (g stubGateway) SearchContent(context.Context, string) ([]string, error) {
	return g.categories, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Env:         "test",
		CORSOrigins: "https://example.org",
		SiteTitle:   "민원 분야 찾기",
	}
}

func newTestServer(t *testing.T, cfg *config.Config, gw store.Gateway) *Server {
	t.Helper()
	table, err := mapping.FromMap(map[string]string{"주차": "교통"})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	res := resolver.New(gw, table, resolver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	s := New(cfg)
	s.RegisterRoutes(gw, res)
	return s
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestRoutes_Status(t *testing.T) {
	s := newTestServer(t, testConfig(), stubGateway{count: 3})

	tests := []struct {
		method   string
		target   string
		expected int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/static/search.js", http.StatusOK},
		{http.MethodGet, "/api/mappings", http.StatusOK},
		{http.MethodGet, "/api/search?keyword=%EC%A3%BC%EC%B0%A8", http.StatusOK},
		{http.MethodHead, "/api/search?keyword=%EC%A3%BC%EC%B0%A8", http.StatusOK},
		{http.MethodGet, "/.netlify/functions/search?keyword=%EC%A3%BC%EC%B0%A8", http.StatusOK},
		{http.MethodGet, "/api/search", http.StatusBadRequest},
		{http.MethodPost, "/api/search", http.StatusMethodNotAllowed},
		{http.MethodPost, "/.netlify/functions/search", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			resp, body := do(t, s.App, httptest.NewRequest(tt.method, tt.target, nil))
			if resp.StatusCode != tt.expected {
				t.Errorf("status = %d, want %d (body %q)", resp.StatusCode, tt.expected, body)
			}
		})
	}
}

func TestAPI_CORSWithoutOrigin(t *testing.T) {
	s := newTestServer(t, testConfig(), stubGateway{count: 3})

	resp, _ := do(t, s.App, httptest.NewRequest(http.MethodGet, "/api/search?keyword=%EC%A3%BC%EC%B0%A8", nil))
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, "GET, OPTIONS")
	}
}

func TestAPI_BrowserPreflight(t *testing.T) {
	s := newTestServer(t, testConfig(), stubGateway{})

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, body := do(t, s.App, req)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 200 or 204", resp.StatusCode)
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
}

func TestAPI_MappingsPreflight(t *testing.T) {
	s := newTestServer(t, testConfig(), stubGateway{})

	req := httptest.NewRequest(http.MethodOptions, "/api/mappings", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, body := do(t, s.App, req)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
}

func TestPage_UsesConfiguredCORS(t *testing.T) {
	s := newTestServer(t, testConfig(), stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.org")

	resp, _ := do(t, s.App, req)
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "https://example.org")
	}
}

func TestErrorHandler_APIPanic(t *testing.T) {
	s := New(testConfig())
	s.App.Get("/api/boom", func(c fiber.Ctx) error {
		panic("boom")
	})

	resp, body := do(t, s.App, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if want := `{"error":"서버 오류가 발생했습니다."}`; body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 2
	s := newTestServer(t, cfg, stubGateway{count: 1})

	for i := range 3 {
		resp, _ := do(t, s.App, httptest.NewRequest(http.MethodGet, "/api/search?keyword=%EC%A3%BC%EC%B0%A8", nil))
		want := http.StatusOK
		if i == 2 {
			want = http.StatusTooManyRequests
		}
		if resp.StatusCode != want {
			t.Errorf("request %d: status = %d, want %d", i+1, resp.StatusCode, want)
		}
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("request %d: Access-Control-Allow-Origin = %q, want %q", i+1, got, "*")
		}
	}

	// Probes are exempt
	resp, _ := do(t, s.App, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/healthz status = %d, want 200", resp.StatusCode)
	}
}

func TestRateLimit_APIHeadersOnThrottledRequests(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 1
	s := newTestServer(t, cfg, stubGateway{count: 1})

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/search?keyword=x"},
		{http.MethodGet, "/.netlify/functions/search?keyword=x"},
		{http.MethodOptions, "/api/search"},
		{http.MethodGet, "/api/mappings"},
	}

	// Exhaust the single allowed request
	do(t, s.App, httptest.NewRequest(http.MethodGet, "/api/search?keyword=x", nil))

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			resp, body := do(t, s.App, httptest.NewRequest(tt.method, tt.target, nil))
			if resp.StatusCode != http.StatusTooManyRequests {
				t.Fatalf("status = %d, want 429", resp.StatusCode)
			}
			want := map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Headers": "Content-Type",
				"Access-Control-Allow-Methods": "GET, OPTIONS",
			}
			for header, value := range want {
				if got := resp.Header.Get(header); got != value {
					t.Errorf("%s = %q, want %q", header, got, value)
				}
			}
			if body == "" {
				t.Error("throttled response has no body")
			}
		})
	}

	// Non-API paths keep the configured policy
	resp, _ := do(t, s.App, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got == "*" {
		t.Errorf("page Access-Control-Allow-Origin = %q, want configured origin only", got)
	}
}

func TestIsAPIPath(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/api/search", true},
		{"/api/mappings", true},
		{"/.netlify/functions/search", true},
		{"/", false},
		{"/apis", false},
		{"/static/search.js", false},
	}
	for _, tt := range tests {
		if got := isAPIPath(tt.path); got != tt.expected {
			t.Errorf("isAPIPath(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}
