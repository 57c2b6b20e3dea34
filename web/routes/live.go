package routes

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	cs "github.com/dasdy/nuhxboard/web/components"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

func (s *ServerHandler) sendFrame(conn *websocket.Conn) error {
	f := s.Board.Frame()

	buf, err := renderToBuffer(cs.Board(&f))
	if err != nil {
		return err
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("could not set write deadline: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, bytes.TrimSpace(buf.Bytes())); err != nil {
		return fmt.Errorf("could not send frame: %w", err)
	}

	return nil
}

// LiveHandle upgrades the connection to a websocket and pushes a fresh SVG frame
// every time the board changes.
func (s *ServerHandler) LiveHandle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.ErrorContext(logCtx, "Websocket upgrade failed", "error", err)

		return
	}
	defer conn.Close()

	updates, unsubscribe := s.Board.Subscribe()
	defer unsubscribe()

	// Incoming messages are ignored; reading is only needed to notice the peer going away.
	closed := make(chan struct{})

	go func() {
		defer close(closed)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.sendFrame(conn); err != nil {
		slog.WarnContext(logCtx, "Initial frame not delivered", "error", err)

		return
	}

	interval := s.PingInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return
			}

			if err := s.sendFrame(conn); err != nil {
				slog.WarnContext(logCtx, "Frame not delivered", "error", err)

				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.DebugContext(logCtx, "Ping failed", "error", err)

				return
			}
		case <-closed:
			slog.DebugContext(logCtx, "Websocket client went away")

			return
		case <-r.Context().Done():
			return
		}
	}
}
