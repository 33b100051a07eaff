package api

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"serwis-blogowy/internal/models"
)

type contextKey string

const actorContextKey = contextKey("actor")

// SessionMiddleware resolves the session cookie to a live user row on
// every request. A missing cookie, an expired session or a deleted user
// all leave the request anonymous; the request still proceeds.
func (s *Server) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.config.Session.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor, err := s.store.GetUserBySessionToken(r.Context(), cookie.Value)
		if err != nil {
			logrus.Errorf("Nie można rozwiązać sesji: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if actor == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous requests before any ownership check runs.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFromContext(r.Context()) == nil {
			renderView(w, http.StatusUnauthorized, ViewModel{
				Flash:    &Flash{Text: "Please log in first", Category: FlashWarning},
				Redirect: "/login",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ActorFromContext(ctx context.Context) *models.User {
	if actor, ok := ctx.Value(actorContextKey).(*models.User); ok {
		return actor
	}
	return nil
}
