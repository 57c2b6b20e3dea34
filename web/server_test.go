package web_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/dasdy/nuhxboard/board"
	"github.com/dasdy/nuhxboard/layout"
	"github.com/dasdy/nuhxboard/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleBoard(t *testing.T) *board.Board {
	t.Helper()

	cfg, doc, err := layout.LoadFiles("../data/example.layout.json", "../data/example.style.json")
	require.NoError(t, err)

	return board.New(cfg, doc)
}

func TestBuildServer(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		dev         bool
		status      int
		contentType string
		noStore     bool
	}{
		{name: "index", path: "/", status: http.StatusOK, contentType: "text/html; charset=UTF-8"},
		{name: "frame", path: "/frame.svg", status: http.StatusOK, contentType: "image/svg+xml"},
		{name: "frame in dev mode", path: "/frame.svg", dev: true, status: http.StatusOK, contentType: "image/svg+xml", noStore: true},
		{name: "state", path: "/state", status: http.StatusOK, contentType: "application/json"},
		{name: "unknown path", path: "/stats", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := web.BuildServer(exampleBoard(t), tt.dev)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)

			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			}

			if tt.noStore {
				assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			} else {
				assert.Empty(t, rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

func TestStartServerStopsOnCancel(t *testing.T) {
	port := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())

	b := exampleBoard(t)
	done := make(chan error, 1)

	go func() {
		done <- web.StartServer(ctx, port, b, false)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(port) + "/state")
		if err != nil {
			return false
		}

		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)

		return resp.StatusCode == http.StatusOK && len(body) > 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
