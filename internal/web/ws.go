package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	statusPushInterval = 30 * time.Second
	wsWriteTimeout     = 5 * time.Second
)

var statusUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(r.Host), strings.TrimSpace(u.Host))
	},
}

// handleStatusWS upgrades the connection and pushes the current status
// snapshot immediately and then on every push interval, until the client
// goes away.
func (s *Server) handleStatusWS(w http.ResponseWriter, r *http.Request) {
	conn, err := statusUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.serveStatusConnection(conn)
}

func (s *Server) serveStatusConnection(conn *websocket.Conn) {
	defer conn.Close()

	if err := s.pushStatus(conn); err != nil {
		return
	}

	ticker := time.NewTicker(statusPushInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			if err := s.pushStatus(conn); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) pushStatus(conn *websocket.Conn) error {
	latest, err := s.store.Latest()
	if err != nil {
		s.log.Error("failed to load status for websocket push", "error", err)
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(statusSnapshot{
		Title:       s.title,
		GeneratedAt: time.Now().UTC(),
		Hosts:       latest,
	})
}
