package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/config"
	domainChat "github.com/vivahlink/console/internal/domain/chat"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/service"
	"github.com/vivahlink/console/internal/testutil"
	"github.com/vivahlink/console/internal/types"
)

type chatWatchFixture struct {
	srv   *httptest.Server
	store *cache.Store
	chats *testutil.InMemoryChatStore
}

func newChatWatchFixture(t *testing.T) *chatWatchFixture {
	t.Helper()

	cfg := config.GetDefaultConfig()
	cfg.Cache.ChatListPollInterval = 20 * time.Millisecond
	cfg.Cache.ChatMessagePollInterval = 20 * time.Millisecond

	log := logger.GetLogger()
	store := cache.NewStore(cfg, log)
	t.Cleanup(store.Clear)
	chats := testutil.NewInMemoryChatStore()

	params := service.ServiceParams{
		Logger:   log,
		Config:   cfg,
		Cache:    store,
		ChatRepo: chats,
	}
	chatService := service.NewChatService(params, service.NewMutationExecutor(store, log))
	handler := NewChatHandler(chatService, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/chats/watch", handler.WatchList)
	router.DELETE("/v1/chats/watch/:watch_id", handler.Unwatch)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &chatWatchFixture{srv: srv, store: store, chats: chats}
}

func (f *chatWatchFixture) seedOpenChat(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.chats.SeedChat(context.Background(), &domainChat.Chat{
		ID:        id,
		UserID:    "user-" + id,
		Subject:   "help with " + id,
		Open:      true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}))
}

func (f *chatWatchFixture) chatCount() int {
	snap := f.store.Snapshot(domainChat.ListKey(types.NewChatFilter()))
	result, ok := snap.Data.(*domainChat.ListResult)
	if !ok {
		return 0
	}
	return len(result.Items)
}

// A watch started over HTTP must keep polling after the request that
// started it has returned; only releasing the watch id stops it.
func TestWatchSurvivesRequestUntilReleased(t *testing.T) {
	f := newChatWatchFixture(t)
	f.seedOpenChat(t, "c1")

	resp, err := http.Post(f.srv.URL+"/v1/chats/watch", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		WatchID string `json:"watch_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.WatchID)

	// The request is over; a chat seeded now is only visible if the
	// poller outlived it.
	f.seedOpenChat(t, "c2")
	assert.Eventually(t, func() bool {
		return f.chatCount() == 2
	}, time.Second, 10*time.Millisecond, "watch must keep polling after the request returns")

	req, err := http.NewRequest(http.MethodDelete, f.srv.URL+"/v1/chats/watch/"+body.WatchID, nil)
	require.NoError(t, err)
	stopResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	stopResp.Body.Close()
	require.Equal(t, http.StatusOK, stopResp.StatusCode)

	time.Sleep(30 * time.Millisecond) // let any in-flight fetch settle
	f.seedOpenChat(t, "c3")
	assert.Never(t, func() bool {
		return f.chatCount() == 3
	}, 150*time.Millisecond, 20*time.Millisecond, "released watches must stop polling")
}
