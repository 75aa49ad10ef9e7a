package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"llmprice-hq/pricebook/pkg/config"
)

func testServerConfig() *config.ServerConfig {
	cfg := config.Default().Server
	cfg.ListenAddress = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second
	return &cfg
}

func waitRunning(t *testing.T, srv *Server) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if srv.IsRunning() && srv.Addr() != nil {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("server did not start")
}

func TestServer_StartAndCancel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	srv := NewServer(testServerConfig(), handler, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	waitRunning(t, srv)

	resp, err := http.Get("http://" + srv.Addr().String() + "/")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
	if srv.IsRunning() {
		t.Error("server still reports running")
	}
}

func TestServer_Stop(t *testing.T) {
	srv := NewServer(testServerConfig(), http.NotFoundHandler(), nil)

	done := make(chan error, 1)
	go func() { done <- srv.Start(context.Background()) }()
	waitRunning(t, srv)

	srv.Stop()
	srv.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StopConcurrent(t *testing.T) {
	srv := NewServer(testServerConfig(), http.NotFoundHandler(), nil)

	done := make(chan error, 1)
	go func() { done <- srv.Start(context.Background()) }()
	waitRunning(t, srv)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			srv.Stop()
		}()
	}
	close(start)
	wg.Wait()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StopBeforeStart(t *testing.T) {
	srv := NewServer(testServerConfig(), http.NotFoundHandler(), nil)
	srv.Stop()
	srv.Stop()

	done := make(chan error, 1)
	go func() { done <- srv.Start(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start() ignored an earlier Stop")
	}
}

func TestServer_ListenError(t *testing.T) {
	cfg := testServerConfig()
	cfg.ListenAddress = "256.0.0.1:0"

	srv := NewServer(cfg, http.NotFoundHandler(), nil)
	if err := srv.Start(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
	if srv.IsRunning() {
		t.Error("server should not be running after listen error")
	}
}
