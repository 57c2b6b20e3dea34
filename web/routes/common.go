package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/dasdy/nuhxboard/board"
	"github.com/dasdy/nuhxboard/logging"
	cs "github.com/dasdy/nuhxboard/web/components"
	"github.com/gorilla/websocket"
)

var logCtx = logging.PackageCtx("routes")

// ServerHandler holds all dependencies needed for the web server handlers.
type ServerHandler struct {
	Board        *board.Board
	Title        string
	Upgrader     websocket.Upgrader
	PingInterval time.Duration
}

func NewServerHandler(b *board.Board) *ServerHandler {
	return &ServerHandler{
		Board: b,
		Title: "nuhxboard",
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		PingInterval: 30 * time.Second,
	}
}

func renderToBuffer(component templ.Component) (*bytes.Buffer, error) {
	var buf bytes.Buffer

	if err := component.Render(context.Background(), &buf); err != nil {
		return nil, fmt.Errorf("could not render template: %w", err)
	}

	return &buf, nil
}

// SafeRenderTemplate safely renders a templ component to an http.ResponseWriter.
func SafeRenderTemplate(component templ.Component, w http.ResponseWriter, contentType string) error {
	// Do not write to w because it implies 200 status
	buf, err := renderToBuffer(component)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return err
	}

	// Template executed successfully to the buffer.
	// Now, copy it over to the ResponseWriter
	// This implies a 200 OK status code
	w.Header().Set("Content-Type", contentType)

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(logCtx, "Failed to write response", "error", err)

		return fmt.Errorf("could not write to response writer: %w", err)
	}

	return nil
}

// IndexHandle serves the live board page.
func (s *ServerHandler) IndexHandle(w http.ResponseWriter, _ *http.Request) {
	slog.DebugContext(logCtx, "Handling index request")

	f := s.Board.Frame()
	_ = SafeRenderTemplate(cs.Page(&f, s.Title), w, "text/html; charset=UTF-8")
}

// FrameHandle serves the current frame as an SVG document.
func (s *ServerHandler) FrameHandle(w http.ResponseWriter, _ *http.Request) {
	f := s.Board.Frame()
	_ = SafeRenderTemplate(cs.Board(&f), w, "image/svg+xml")
}

type stateResponse struct {
	Pressed []uint32 `json:"pressed"`
}

// StateHandle reports the currently pressed key codes.
func (s *ServerHandler) StateHandle(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(stateResponse{Pressed: s.Board.State.Pressed()}); err != nil {
		slog.ErrorContext(logCtx, "Failed to write state", "error", err)
	}
}
