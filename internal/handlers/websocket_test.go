package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"deck-of-cards-go/internal/deck"
	ws "deck-of-cards-go/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func readEnvelope(t *testing.T, conn *websocket.Conn) wsEnvelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m wsEnvelope
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestWebSocketStreamsDeckUpdates(t *testing.T) {
	s := newTestServer(t)
	cfg := testConfig(t)

	hub := ws.NewHub(nil)
	go hub.Run()
	t.Cleanup(hub.Stop)
	ref := ws.NewHubRef(hub)

	unsubscribe := BroadcastDeckEvents(s.svc, ref.Get)
	t.Cleanup(unsubscribe)
	s.router.GET("/ws", WebSocketHandler(ref.Get, s.svc, cfg))

	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	header := http.Header{"Authorization": {"Bearer " + s.token}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	m := readEnvelope(t, conn)
	require.Equal(t, "connected", m.Type)
	var v deck.View
	require.NoError(t, json.Unmarshal(m.Payload, &v))
	assert.Len(t, v.Remaining, 52)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	drawn := decodeView(t, s.do(t, http.MethodPost, "/api/deck/draw", `{"count":2}`)).Drawn

	got := map[deck.Pile]DeckUpdate{}
	for range 2 {
		m := readEnvelope(t, conn)
		require.Equal(t, "deck_update", m.Type)
		var u DeckUpdate
		require.NoError(t, json.Unmarshal(m.Payload, &u))
		got[u.Pile] = u
	}
	assert.Len(t, got[deck.PileRemaining].Cards, 50)
	assert.Equal(t, drawn, got[deck.PileDrawn].Cards)
	assert.Equal(t, s.svc.State().Points, got[deck.PileDrawn].Points)
}

func TestOriginPolicy(t *testing.T) {
	t.Cleanup(func() { SetWebSocketOriginPolicy(false, false, nil) })

	SetWebSocketOriginPolicy(false, false, []string{"https://cards.example.com"})
	assert.True(t, isAllowedOrigin("https://cards.example.com"))
	assert.False(t, isAllowedOrigin("http://localhost:5173"))
	assert.False(t, cfgDevAllowAll())

	SetWebSocketOriginPolicy(true, true, nil)
	assert.True(t, cfgIsDev())
	assert.True(t, cfgDevAllowAll())
	assert.True(t, isLocalhostOrigin("http://127.0.0.1:3000"))
	assert.False(t, isLocalhostOrigin("https://evil.example"))
}
