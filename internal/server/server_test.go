package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/njchilds90/simplehtml/internal/config"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default().Server
	cfg.MaxBodyBytes = 64
	return NewRouter(cfg, zap.NewNop())
}

func TestSanitize_JSON(t *testing.T) {
	body := `{"input":"foo <em>bar</em> <script>x</script>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sanitize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	var resp SanitizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if want := "foo <em>bar</em> &lt;script&gt;x&lt;/script&gt;"; resp.HTML != want {
		t.Errorf("html = %q, want %q", resp.HTML, want)
	}
}

func TestSanitize_RawText(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sanitize", strings.NewReader("a & <b>b</b>"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if want := "a &amp; <b>b</b>"; rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestSanitize_BadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sanitize", strings.NewReader(`{"input":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSanitize_TooLarge(t *testing.T) {
	for _, ct := range []string{"text/plain", "application/json"} {
		body := strings.Repeat("x", 65)
		if ct == "application/json" {
			body = `{"input":"` + body + `"}`
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sanitize", strings.NewReader(body))
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		newTestRouter(t).ServeHTTP(rec, req)

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("%s: status = %d, want 413", ct, rec.Code)
		}
	}
}

func TestTags(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tags", nil)
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	var resp TagsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(resp.Tags) == 0 || resp.Tags[0] != "b" {
		t.Errorf("tags = %v, want allowlist starting with b", resp.Tags)
	}
}

func TestHealthAndFallbacks(t *testing.T) {
	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodGet, "/api/v1/sanitize", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s %s: Content-Type = %q, want application/json", tt.method, tt.path, ct)
		}
	}
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default().Server
	cfg.ShutdownTimeout = 2 * time.Second
	srv := New(cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/api/v1/sanitize", "text/plain", bytes.NewBufferString("<i>ok</i>"))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(b) != "<i>ok</i>" {
		t.Errorf("body = %q, want <i>ok</i>", b)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
