//go:build !integration

package ws_video

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/humanbelnik/catalog/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type WSVideoUnitSuite struct {
	suite.Suite
}

func init() {
	gin.SetMode(gin.TestMode)
}

func initResources(t provider.T) (*Hub, *httptest.Server, context.CancelFunc) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	engine := gin.New()
	NewController(hub).RegisterRoutes(engine.Group("/api/v1"))
	srv := httptest.NewServer(engine)

	return hub, srv, func() {
		cancel()
		srv.Close()
	}
}

func dial(t provider.T, srv *httptest.Server, query string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/videos/events" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	return conn
}

func (s *WSVideoUnitSuite) TestFilteredSubscription(t provider.T) {
	t.Parallel()
	hub, srv, stop := initResources(t)
	defer stop()

	watched, other := uuid.New(), uuid.New()
	conn := dial(t, srv, "?video_id="+watched.String())
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientsCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(model.MediaStatusEvent{VideoID: other, Kind: model.AssetMedia, Status: model.MediaStatusProcessing})
	hub.Publish(model.MediaStatusEvent{VideoID: watched, Kind: model.AssetMedia, Status: model.MediaStatusCompleted, EncodedPath: "videos/x/enc"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got struct {
		Type    string                 `json:"type"`
		Payload model.MediaStatusEvent `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventMediaStatus, got.Type)
	assert.Equal(t, watched, got.Payload.VideoID)
	assert.Equal(t, model.MediaStatusCompleted, got.Payload.Status)
	assert.Equal(t, "videos/x/enc", got.Payload.EncodedPath)
}

func (s *WSVideoUnitSuite) TestUnfilteredSubscriptionAndLeave(t provider.T) {
	t.Parallel()
	hub, srv, stop := initResources(t)
	defer stop()

	conn := dial(t, srv, "")
	require.Eventually(t, func() bool { return hub.ClientsCount() == 1 }, time.Second, 10*time.Millisecond)

	id := uuid.New()
	hub.Publish(model.MediaStatusEvent{VideoID: id, Kind: model.AssetMedia, Status: model.MediaStatusError})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventMediaStatus, got.Type)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientsCount() == 0 }, time.Second, 10*time.Millisecond)
}

func (s *WSVideoUnitSuite) TestShutdownClosesClients(t provider.T) {
	t.Parallel()
	hub, srv, stop := initResources(t)

	conn := dial(t, srv, "")
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientsCount() == 1 }, time.Second, 10*time.Millisecond)

	stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.Equal(t, 0, hub.ClientsCount())

	// must not block once the hub is gone
	hub.Publish(model.MediaStatusEvent{VideoID: uuid.New()})
}

func (s *WSVideoUnitSuite) TestInvalidVideoID(t provider.T) {
	t.Parallel()
	engine := gin.New()
	NewController(NewHub()).RegisterRoutes(engine.Group("/api/v1"))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ws/videos/events?video_id=nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWSVideoUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(WSVideoUnitSuite))
}
