// @title           Blog Service API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /
package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"serwis-blogowy/internal/api"
	"serwis-blogowy/internal/config"
	"serwis-blogowy/internal/database"
	"serwis-blogowy/internal/logger"
	"serwis-blogowy/internal/websocket"
)

func main() {
	logger.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		logrus.Fatalf("Nie można połączyć się z bazą danych: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		logrus.Fatalf("Nie można pingować bazy danych: %v", err)
	}
	logrus.Info("Pomyślnie połączono z bazą danych")

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(dbpool, wsHub)
	server := api.NewServer(cfg, store, wsHub)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(server.SessionMiddleware)

		r.Get("/", server.ListPostsHandler)
		r.Get("/posts/{postID}", server.GetPostHandler)
		r.Get("/profile/{username}", server.GetProfileHandler)
		r.Post("/search", server.SearchPostsHandler)
		r.Get("/login", server.LoginHandler)
		r.Post("/login", server.LoginHandler)
		r.Get("/registration", server.RegistrationHandler)
		r.Post("/registration", server.RegistrationHandler)
		r.Get("/ws", server.ServeWsHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.RequireAuth)

			r.Get("/create/post", server.CreatePostHandler)
			r.Post("/create/post", server.CreatePostHandler)
			r.Get("/posts/{postID}/edit", server.EditPostHandler)
			r.Post("/posts/{postID}/edit", server.EditPostHandler)
			r.Get("/posts/{postID}/delete", server.DeletePostHandler)
			r.Get("/profile/{username}/edit", server.EditProfileHandler)
			r.Post("/profile/{username}/edit", server.EditProfileHandler)
			r.Get("/profile/{username}/delete", server.DeleteProfileHandler)
			r.Get("/logout", server.LogoutHandler)
			r.Post("/logout", server.LogoutHandler)
			r.Get("/admin", server.AdminHandler)
			r.Get("/events", server.GetEventsHandler)
			r.Get("/me", server.GetCurrentUserHandler)
			r.Get("/sessions", server.ListSessionsHandler)
			r.Delete("/sessions/{sessionID}", server.DeleteSessionHandler)
			r.Post("/sessions/terminate_all", server.TerminateAllSessionsHandler)
		})
	})

	logrus.Infof("Uruchamianie serwera na %s", cfg.HTTP.Addr)
	if err := http.ListenAndServe(cfg.HTTP.Addr, r); err != nil {
		logrus.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
