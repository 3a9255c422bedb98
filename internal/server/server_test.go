package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swan/internal/config"
	"swan/internal/model"
	"swan/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Data.DataDir = t.TempDir()

	ds := store.NewDataset("test.xlsx", "xlsx", model.RequiredColumns, []model.Record{
		{Department: "Lab", Physician: "Dr. Ali", Type: "Procedure", Service: "CBC", Price: "100", QtyCash: 1, QtyIns: 1},
	})
	return NewServer(cfg, ds, nil)
}

func TestServer_ServesIndexAndAPI(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		path        string
		contentType string
		contains    string
	}{
		{path: "/", contentType: "text/html", contains: "app.js"},
		{path: "/some/client/route", contentType: "text/html", contains: "app.js"},
		{path: "/favicon.svg", contentType: "image/svg+xml", contains: "<svg"},
		{path: "/assets/app.js", contentType: "javascript", contains: "/api/dashboard"},
		{path: "/assets/app.js", contentType: "javascript", contains: "'&page=' + state.page"},
		{path: "/assets/logo.svg", contentType: "image/svg+xml", contains: "<svg"},
		{path: "/", contentType: "text/html", contains: `src="/assets/logo.svg"`},
		{path: "/", contentType: "text/html", contains: `id="page-next"`},
		{path: "/api/status", contentType: "application/json", contains: `"recordCount":1`},
	} {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, tc.contentType) {
			t.Fatalf("%s: content-type %q", tc.path, ct)
		}
		if !strings.Contains(w.Body.String(), tc.contains) {
			t.Fatalf("%s: body missing %q", tc.path, tc.contains)
		}
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/status", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight: status %d headers %v", w.Code, w.Header())
	}
}

func runAndShutdown(t *testing.T, srv *Server, delay time.Duration) {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- srv.Run("127.0.0.1:0") }()
	time.Sleep(delay)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("server still running after Shutdown returned")
	}
}

func TestServer_ShutdownRightAfterRun(t *testing.T) {
	runAndShutdown(t, newTestServer(t), 0)
}

func TestServer_ShutdownWhileServing(t *testing.T) {
	runAndShutdown(t, newTestServer(t), 50*time.Millisecond)
}
