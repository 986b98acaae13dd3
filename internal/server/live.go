package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"webhook-relay/internal/session"
	"webhook-relay/internal/types"
)

// liveConn serializes writes; gorilla allows one concurrent writer.
type liveConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (c *liveConn) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.WriteJSON(v)
}

// GET /ws
// Live session: client sends {type:"submit", text}, server pushes view frames.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade failed: %v", err)
		return
	}
	conn := &liveConn{Conn: ws}
	defer conn.Close()
	conn.SetReadLimit(maxRequestBytes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sess := s.newSession()
	go sess.Run(ctx)

	written := make(chan struct{})
	go func() {
		defer close(written)
		for u := range sess.Updates() {
			if err := conn.send(viewFrame(u)); err != nil {
				log.Printf("[live] write failed: %v", err)
				cancel()
				return
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[live] read failed: %v", err)
			}
			break
		}
		var f types.ClientFrame
		if err := json.Unmarshal(msg, &f); err != nil {
			_ = conn.send(types.ViewFrame{Type: "error", Message: "frame must be valid JSON"})
			continue
		}
		if f.Type != "submit" {
			_ = conn.send(types.ViewFrame{Type: "error", Message: "unsupported frame type"})
			continue
		}
		if err := sess.Submit(ctx, f.Text); err != nil {
			break
		}
	}
	cancel()
	<-written
}

func viewFrame(u session.Update) types.ViewFrame {
	html, err := u.View.HTML()
	if err != nil {
		log.Printf("[live] render failed: %v", err)
		return types.ViewFrame{Type: "error", Seq: u.Seq, Message: "render error"}
	}
	return types.ViewFrame{
		Type:     "view",
		Seq:      u.Seq,
		State:    string(u.View.State),
		HTML:     string(html),
		CopyText: u.View.CopyText,
		CanCopy:  u.View.CanCopy,
	}
}

func sameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == host
}
