package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"serwis-blogowy/internal/auth"
	"serwis-blogowy/internal/database"
	"serwis-blogowy/internal/models"
)

type AdminResponse struct {
	Users        []models.User    `json:"users"`
	RecentEvents []database.Event `json:"recent_events"`
}

// @Summary      Admin overview
// @Description  All registered users plus the recent activity journal. Restricted to the fixed admin allow-list.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  ViewModel
// @Failure      401  {object}  ViewModel
// @Failure      403  {object}  ViewModel
// @Router       /admin [get]
func (s *Server) AdminHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if !auth.IsAdmin(actor) {
		renderForbidden(w)
		return
	}

	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		logrus.Errorf("Nie można pobrać listy użytkowników: %v", err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load the admin overview")
		return
	}

	events, err := s.store.ListRecentEvents(r.Context(), 100)
	if err != nil {
		logrus.Errorf("Nie można pobrać dziennika zdarzeń: %v", err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load the admin overview")
		return
	}

	renderView(w, http.StatusOK, ViewModel{Data: AdminResponse{Users: users, RecentEvents: events}})
}
