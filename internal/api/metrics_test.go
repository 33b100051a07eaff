package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRequestDurationUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Group(func(r chi.Router) {
		r.Use(testServer.SessionMiddleware)
		r.Get("/posts/{postID}", testServer.GetPostHandler)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/424242", nil)
	r.ServeHTTP(w, req)

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var routes []string
	for _, mf := range mfs {
		if mf.GetName() != "http_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "route" {
					routes = append(routes, label.GetValue())
				}
			}
		}
	}

	// One series per route pattern, never per concrete post id.
	require.Contains(t, routes, "/posts/{postID}")
	require.NotContains(t, routes, "/posts/424242")
}
