package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/vivahlink/console/internal/config"
	"github.com/vivahlink/console/internal/domain/chat"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/testutil"
	"github.com/vivahlink/console/internal/types"
)

type ChatServiceSuite struct {
	testutil.BaseServiceTestSuite
	cfg     *config.Configuration
	service ChatService
}

func TestChatService(t *testing.T) {
	suite.Run(t, new(ChatServiceSuite))
}

func (s *ChatServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	// Short poll intervals so watch tests run in milliseconds.
	s.cfg = config.GetDefaultConfig()
	s.cfg.Cache.ChatListPollInterval = 20 * time.Millisecond
	s.cfg.Cache.ChatMessagePollInterval = 20 * time.Millisecond

	params := ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.cfg,
		Cache:          s.GetCacheStore(),
		ProfileRepo:    s.GetStores().Profile,
		VendorRepo:     s.GetStores().Vendor,
		MembershipRepo: s.GetStores().Membership,
		ChatRepo:       s.GetStores().Chat,
		StatsRepo:      s.GetStores().Stats,
	}
	executor := NewMutationExecutor(s.GetCacheStore(), s.GetLogger())
	s.service = NewChatService(params, executor)
}

func (s *ChatServiceSuite) seedChat(id string, open bool) {
	c := &chat.Chat{
		ID:        id,
		UserID:    "user-" + id,
		Subject:   "help with " + id,
		Open:      open,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.NoError(s.GetStores().Chat.SeedChat(s.GetContext(), c))
}

func (s *ChatServiceSuite) TestListOpenChats() {
	s.seedChat("c1", true)
	s.seedChat("c2", false)

	open := true
	filter := types.NewChatFilter()
	filter.Open = &open

	result, err := s.service.List(s.GetContext(), filter)
	s.NoError(err)
	s.Len(result.Items, 1)
	s.Equal("c1", result.Items[0].ID)
}

func (s *ChatServiceSuite) TestSendMessageAppends() {
	s.seedChat("c1", true)

	sent, err := s.service.SendMessage(s.GetContext(), "c1", "how can we help?")
	s.NoError(err)
	s.True(sent.FromAdmin)
	s.Equal("admin-1", sent.SenderID)

	msgs, err := s.service.Messages(s.GetContext(), "c1", nil)
	s.NoError(err)
	s.Len(msgs.Items, 1)
	s.Equal("how can we help?", msgs.Items[0].Body)
}

func (s *ChatServiceSuite) TestSendMessageToClosedChat() {
	s.seedChat("c1", false)

	_, err := s.service.SendMessage(s.GetContext(), "c1", "anyone there?")
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ChatServiceSuite) TestCloseChat() {
	s.seedChat("c1", true)

	s.NoError(s.service.CloseChat(s.GetContext(), "c1"))

	result, err := s.service.List(s.GetContext(), nil)
	s.NoError(err)
	s.Require().Len(result.Items, 1)
	s.False(result.Items[0].Open)
}

func (s *ChatServiceSuite) TestWatchListPollsUntilStopped() {
	s.seedChat("c1", true)

	stop := s.service.WatchList(s.GetContext(), nil)

	// Seed another chat after the first fetch; polling must pick it up
	// without any explicit refresh.
	s.seedChat("c2", true)
	s.Eventually(func() bool {
		snap := s.GetCacheStore().Snapshot(chat.ListKey(types.NewChatFilter()))
		result, ok := snap.Data.(*chat.ListResult)
		return ok && len(result.Items) == 2
	}, time.Second, 10*time.Millisecond)

	stop()
	time.Sleep(30 * time.Millisecond) // let any in-flight fetch settle

	s.seedChat("c3", true)
	s.Never(func() bool {
		snap := s.GetCacheStore().Snapshot(chat.ListKey(types.NewChatFilter()))
		result, ok := snap.Data.(*chat.ListResult)
		return ok && len(result.Items) == 3
	}, 150*time.Millisecond, 20*time.Millisecond, "polling must stop when the watch is released")
}

func (s *ChatServiceSuite) TestRepeatedWatchDoesNotStackPollers() {
	s.seedChat("c1", true)

	stop1 := s.service.WatchList(s.GetContext(), nil)
	stop2 := s.service.WatchList(s.GetContext(), nil)

	// The first watch was replaced; releasing the second stops polling.
	stop2()
	time.Sleep(30 * time.Millisecond)
	s.seedChat("c2", true)
	s.Never(func() bool {
		snap := s.GetCacheStore().Snapshot(chat.ListKey(types.NewChatFilter()))
		result, ok := snap.Data.(*chat.ListResult)
		return ok && len(result.Items) == 2
	}, 150*time.Millisecond, 20*time.Millisecond)

	stop1() // released watch, no-op
}
