package pharmatrackserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialFeed(t *testing.T, srv *testServer) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.router)
	t.Cleanup(ts.Close)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/medicines/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool { return srv.hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestFeedStreamsInventoryEvents(t *testing.T) {
	srv := newTestServer(t)
	conn := dialFeed(t, srv)
	maker := srv.signIn(t, "maker@pharmatrack.test", string(RoleManufacturer))

	created := createMedicine(t, srv, maker, "Paracetamol", 100)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Event   string         `json:"event"`
		Payload map[string]any `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "inventory.medicine.created", msg.Event)
	require.Equal(t, created.ID, msg.Payload["medicineId"])
}

func TestFeedClosesWhenHubCloses(t *testing.T) {
	srv := newTestServer(t)
	conn := dialFeed(t, srv)

	srv.hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}

func TestFeedUnavailableWithoutHub(t *testing.T) {
	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{FeedAPI: NewFeedAPI(nil, nil, nil)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/medicines/stream", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
