package api

import (
	"net/http"

	"serwis-blogowy/internal/config"
	"serwis-blogowy/internal/database"
	"serwis-blogowy/internal/websocket"
)

type Server struct {
	config *config.Config
	store  *database.Store
	wsHub  *websocket.Hub
}

func NewServer(cfg *config.Config, store *database.Store, wsHub *websocket.Hub) *Server {
	return &Server{
		config: cfg,
		store:  store,
		wsHub:  wsHub,
	}
}

// @Summary      Health check
// @Description  Verifies that the server and its database connection are alive.
// @Tags         system
// @Success      200  {string}  string "OK"
// @Failure      503  {string}  string "database unavailable"
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.GetPool().Ping(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("OK"))
}
