package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"serwis-blogowy/internal/database"
	"serwis-blogowy/internal/websocket"
)

// newWsTestServer wires a live hub into a server and mounts the routes the
// way cmd/server/main.go does, metrics middleware included, so the upgrade
// path is exercised through the full chain.
func newWsTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := websocket.NewHub()
	go hub.Run()

	store := database.NewStore(testServer.store.GetPool(), hub)
	server := NewServer(testServer.config, store, hub)

	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Group(func(r chi.Router) {
		r.Use(server.SessionMiddleware)
		r.Get("/ws", server.ServeWsHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.RequireAuth)
			r.Post("/create/post", server.CreatePostHandler)
		})
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestWebsocketUpgradeThroughMiddleware(t *testing.T) {
	ts := newWsTestServer(t)

	user := createTestUserAPI(t, "ws_klient")
	cookie := sessionCookieFor(t, user)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := http.Header{}
	header.Add("Cookie", cookie.String())

	conn, resp, err := gorillaws.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	// Give the handler a moment to hand the client to the hub.
	time.Sleep(200 * time.Millisecond)

	body, err := json.Marshal(map[string]string{"title": "Na żywo", "text": "wpis z huba"})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/create/post", bytes.NewReader(body))
	require.NoError(t, err)
	req.AddCookie(cookie)

	postResp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer postResp.Body.Close()
	require.Equal(t, http.StatusCreated, postResp.StatusCode)

	// The published post arrives at the connected client as a journal event.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		EventType string `json:"event_type"`
	}
	require.NoError(t, json.Unmarshal(msg, &event))
	require.Equal(t, "post_created", event.EventType)
}

func TestWebsocketRejectsAnonymous(t *testing.T) {
	ts := newWsTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	if conn != nil {
		conn.Close()
	}
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
