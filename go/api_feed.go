package pharmatrackserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	sharedevents "github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/events"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = (feedPongWait * 9) / 10
)

// FeedAPI streams inventory events over websockets.
type FeedAPI struct {
	hub      *sharedevents.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewFeedAPI creates the live feed. allowOrigin decides which browser origins may connect; nil allows all.
func NewFeedAPI(hub *sharedevents.Hub, allowOrigin func(origin string) bool, logger *slog.Logger) FeedAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return FeedAPI{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowOrigin == nil || allowOrigin(origin)
			},
		},
	}
}

// Get /v1/medicines/stream
// Pushes every inventory event as a JSON text frame until the client goes away
func (api *FeedAPI) Stream(c *gin.Context) {
	if api.hub == nil {
		respondProblem(c, unavailable("live feed is not configured"))
		return
	}
	conn, err := api.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the client.
		return
	}
	defer conn.Close()
	messages, unsubscribe := api.hub.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(feedPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case msg, ok := <-messages:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(feedWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				api.logger.Debug("live feed write failed", slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(feedWriteWait)); err != nil {
				return
			}
		}
	}
}
