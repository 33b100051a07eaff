package api

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"serwis-blogowy/internal/auth"
)

// @Summary      Poll the activity journal
// @Description  Events after the given id, oldest first. Admin only.
// @Tags         admin
// @Produce      json
// @Param        since  query     int  false  "Id of the last event received; omit or 0 for all"
// @Success      200    {object}  ViewModel
// @Failure      400    {object}  ViewModel
// @Failure      401    {object}  ViewModel
// @Failure      403    {object}  ViewModel
// @Router       /events [get]
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	if !auth.IsAdmin(actor) {
		renderForbidden(w)
		return
	}

	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		sinceStr = "0"
	}
	sinceID, err := strconv.ParseInt(sinceStr, 10, 64)
	if err != nil {
		renderFlash(w, http.StatusBadRequest, FlashDanger, "Invalid 'since' parameter, must be a number")
		return
	}

	events, err := s.store.GetEventsSince(r.Context(), sinceID)
	if err != nil {
		logrus.Errorf("Nie można pobrać dziennika zdarzeń: %v", err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load events")
		return
	}

	renderView(w, http.StatusOK, ViewModel{Data: events})
}
