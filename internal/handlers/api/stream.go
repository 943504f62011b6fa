package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hglok/raidsync/internal/common/logger"
	"github.com/hglok/raidsync/internal/services/draft"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API fronts a Discord bot and browser overlays on other
	// origins; auth happens upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamFeed upgrades the connection to a websocket and forwards every
// change notification for the event until the client goes away.
func (h *Handler) streamFeed(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")

	if _, err := h.service.GetEvent(r.Context(), &draft.GetEventInput{EventID: eventID}); err != nil {
		writeError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.L().Warn(r.Context(), "websocket upgrade failed",
			logger.String("event_id", eventID),
			logger.Error(err))
		return
	}

	sub := h.feed.Subscribe(eventID)
	defer sub.Close()
	defer conn.Close()

	// Drain client frames so pings are answered and closes are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case notification, ok := <-sub.C():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(notification); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
