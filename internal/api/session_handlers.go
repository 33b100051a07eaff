package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// @Summary      List active sessions
// @Description  All live sessions of the current actor, for a "manage devices" view.
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  ViewModel
// @Failure      401  {object}  ViewModel
// @Router       /sessions [get]
func (s *Server) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	sessions, err := s.store.ListSessionsForUser(r.Context(), actor.ID)
	if err != nil {
		logrus.Errorf("Nie można pobrać sesji użytkownika %d: %v", actor.ID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not load your sessions")
		return
	}

	renderView(w, http.StatusOK, ViewModel{Data: sessions})
}

// @Summary      Terminate a session
// @Description  Logs out one of the actor's own sessions by id.
// @Tags         sessions
// @Param        sessionID  path  string  true  "Session id"  format(uuid)
// @Success      204  {null}    nil
// @Failure      400  {object}  ViewModel
// @Failure      401  {object}  ViewModel
// @Router       /sessions/{sessionID} [delete]
func (s *Server) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		renderFlash(w, http.StatusBadRequest, FlashDanger, "Invalid session id")
		return
	}

	// Scoped to the actor's own rows; another user's session id is a no-op.
	if err := s.store.DeleteSessionByID(r.Context(), sessionID, actor.ID); err != nil {
		logrus.Errorf("Nie można usunąć sesji %s: %v", sessionID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not terminate the session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Terminate all sessions
// @Description  Logs the actor out everywhere, including the current browser.
// @Tags         sessions
// @Success      204  {null}    nil
// @Failure      401  {object}  ViewModel
// @Router       /sessions/terminate_all [post]
func (s *Server) TerminateAllSessionsHandler(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	if err := s.store.DeleteAllSessionsForUser(r.Context(), actor.ID); err != nil {
		logrus.Errorf("Nie można usunąć sesji użytkownika %d: %v", actor.ID, err)
		renderFlash(w, http.StatusInternalServerError, FlashDanger, "Could not terminate your sessions")
		return
	}

	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
