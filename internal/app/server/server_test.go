package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"empform/internal/domain/employee"
	"empform/internal/platform/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Addr:               "127.0.0.1:0",
		Environment:        "test",
		OutputDir:          t.TempDir(),
		MaxBodyBytes:       65536,
		RateLimitPerMinute: 0,
		MetricsEnabled:     true,
		LogLevel:           "info",
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	frozen := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	app, err := New(testConfig(t), logger, employee.WithClock(func() time.Time { return frozen }))
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

func TestEndToEndSave(t *testing.T) {
	app := newTestApp(t)
	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	body := `{"id":"12","firstName":"Ana","lastName":"Diaz","position":"Engineer","gender":"F","hireDate":"2025-06-02"}`
	resp, err := ts.Client().Post(ts.URL+"/api/v1/employees", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	if app.Service.Table().Len() != 1 {
		t.Fatal("expected one table row")
	}

	resp, err = ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	metricsBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(metricsBody), `empform_saves_total{outcome="saved"} 1`) {
		t.Fatalf("expected save counter, got:\n%s", metricsBody)
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestBodyLimitApplies(t *testing.T) {
	app := newTestApp(t)
	big := bytes.Repeat([]byte("a"), 70000)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", bytes.NewReader(big))
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputDir = ""
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected invalid config error")
	}
	cfg = testConfig(t)
	cfg.CatalogFile = "/does/not/exist.yaml"
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected catalog load error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
