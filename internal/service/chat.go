package service

import (
	"context"
	"sync"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/domain/chat"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
)

// ChatService is a pure consumer of the query cache: there is no push
// channel, so the support tab polls the chat list every 5s and an open chat
// polls its messages every 3s. Watch/Unwatch model tab activation — polling
// runs only while a watch is held and stops the moment it is released.
type ChatService interface {
	List(ctx context.Context, filter *types.ChatFilter) (*chat.ListResult, error)
	Messages(ctx context.Context, chatID string, filter *types.ChatFilter) (*chat.MessageList, error)

	// WatchList starts polling the chat list; the returned func stops it.
	WatchList(ctx context.Context, filter *types.ChatFilter) func()
	// WatchMessages starts polling one chat's messages.
	WatchMessages(ctx context.Context, chatID string) func()

	SendMessage(ctx context.Context, chatID, body string) (*chat.Message, error)
	CloseChat(ctx context.Context, chatID string) error
}

type chatService struct {
	ServiceParams
	executor MutationExecutor

	mu      sync.Mutex
	watches map[string]func()
}

func NewChatService(params ServiceParams, executor MutationExecutor) ChatService {
	return &chatService{
		ServiceParams: params,
		executor:      executor,
		watches:       make(map[string]func()),
	}
}

func (s *chatService) List(ctx context.Context, filter *types.ChatFilter) (*chat.ListResult, error) {
	if filter == nil {
		filter = types.NewChatFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	return readThrough[chat.ListResult](ctx, s.Cache, chat.ListKey(filter), func(ctx context.Context) (any, error) {
		return s.ChatRepo.ListChats(ctx, filter)
	})
}

func (s *chatService) Messages(ctx context.Context, chatID string, filter *types.ChatFilter) (*chat.MessageList, error) {
	if chatID == "" {
		return nil, ierr.NewError("chat ID is required").
			WithHint("Please provide a valid chat ID").
			Mark(ierr.ErrValidation)
	}
	if filter == nil {
		filter = types.NewChatFilter()
	}

	return readThrough[chat.MessageList](ctx, s.Cache, chat.MessagesKey(chatID, filter), func(ctx context.Context) (any, error) {
		return s.ChatRepo.ListMessages(ctx, chatID, filter)
	})
}

func (s *chatService) WatchList(ctx context.Context, filter *types.ChatFilter) func() {
	if filter == nil {
		filter = types.NewChatFilter()
	}
	key := chat.ListKey(filter)

	interval := s.Config.Cache.ChatListPollInterval
	if interval <= 0 {
		interval = cache.PollIntervalChatList
	}
	unsubscribe := s.Cache.Subscribe(ctx, key, cache.SubscribeOptions{
		Fetch: func(ctx context.Context) (any, error) {
			return s.ChatRepo.ListChats(ctx, filter)
		},
		RefetchInterval: interval,
	})
	return s.track("list:"+key.String(), unsubscribe)
}

func (s *chatService) WatchMessages(ctx context.Context, chatID string) func() {
	filter := types.NewChatFilter()
	key := chat.MessagesKey(chatID, filter)

	interval := s.Config.Cache.ChatMessagePollInterval
	if interval <= 0 {
		interval = cache.PollIntervalChatOpen
	}
	unsubscribe := s.Cache.Subscribe(ctx, key, cache.SubscribeOptions{
		Fetch: func(ctx context.Context) (any, error) {
			return s.ChatRepo.ListMessages(ctx, chatID, filter)
		},
		RefetchInterval: interval,
	})
	return s.track("messages:"+chatID, unsubscribe)
}

// track replaces any previous watch under the same name so repeated watch
// requests (tab re-activation) never stack pollers.
func (s *chatService) track(name string, unsubscribe func()) func() {
	s.mu.Lock()
	if prev, ok := s.watches[name]; ok {
		prev()
	}
	s.watches[name] = unsubscribe
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if current, ok := s.watches[name]; ok {
			current()
			delete(s.watches, name)
		}
	}
}

func (s *chatService) SendMessage(ctx context.Context, chatID, body string) (*chat.Message, error) {
	var sent *chat.Message
	err := s.executor.Execute(ctx, Mutation{
		Name: "chat.send_message",
		Run: func(ctx context.Context) error {
			var err error
			sent, err = s.ChatRepo.SendMessage(ctx, chatID, body)
			return err
		},
		Invalidates: []cache.KeyPattern{
			cache.PatternFor(cache.ResourceChatMessages),
			cache.PatternFor(cache.ResourceSupportChats),
		},
	})
	if err != nil {
		return nil, err
	}
	return sent, nil
}

func (s *chatService) CloseChat(ctx context.Context, chatID string) error {
	return s.executor.Execute(ctx, Mutation{
		Name: "chat.close",
		Run:  func(ctx context.Context) error { return s.ChatRepo.CloseChat(ctx, chatID) },
		Invalidates: []cache.KeyPattern{
			cache.PatternFor(cache.ResourceSupportChats),
			cache.PatternFor(cache.ResourceStats),
		},
	})
}
