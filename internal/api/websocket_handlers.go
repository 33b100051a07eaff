package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"serwis-blogowy/internal/websocket"
)

// ServeWsHandler upgrades a logged-in browser to a websocket that streams
// journal events (new posts and the like) as they are recorded.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if actor == nil {
		logrus.Info("WS connection attempt without a session")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("WebSocket upgrade error: %v", err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn, actor.ID)
	s.wsHub.Register <- client

	go client.ReadPump()
	go client.WritePump()
}
