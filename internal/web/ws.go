package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jaminalder/gomoku/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteWait = 10 * time.Second

// socket streams JSON snapshots to a WebSocket client, starting with the
// current one. Clients only listen; commands go through the form routes.
func (h *handlers) socket(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(w, r)
	if sess == nil {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "session", sess.ID(), "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	ch, unsub, err := h.svc.Subscribe(ctx, sess.ID())
	if err != nil {
		return
	}
	defer unsub()

	// The read loop notices the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(sess.Snapshot()); err != nil {
		return
	}
	if err := h.writeWSWithHeartbeat(ctx, conn, ch); err != nil {
		h.log.Debugw("websocket closed", "session", sess.ID(), "error", err)
	}
}

func (h *handlers) writeWSWithHeartbeat(ctx context.Context, conn *websocket.Conn, ch <-chan app.Snapshot) error {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-ch:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteWait))
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(snap); err != nil {
				return err
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return err
			}
		}
	}
}
