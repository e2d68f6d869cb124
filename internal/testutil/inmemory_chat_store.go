package testutil

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vivahlink/console/internal/domain/chat"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
)

// InMemoryChatStore implements chat.Repository
type InMemoryChatStore struct {
	chats    *InMemoryStore[*chat.Chat]
	messages *InMemoryStore[*chat.Message]
}

func NewInMemoryChatStore() *InMemoryChatStore {
	return &InMemoryChatStore{
		chats:    NewInMemoryStore[*chat.Chat](),
		messages: NewInMemoryStore[*chat.Message](),
	}
}

func copyChat(c *chat.Chat) *chat.Chat {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

func copyMessage(m *chat.Message) *chat.Message {
	if m == nil {
		return nil
	}
	copied := *m
	return &copied
}

func (s *InMemoryChatStore) SeedChat(ctx context.Context, c *chat.Chat) error {
	return s.chats.Create(ctx, c.ID, copyChat(c))
}

func (s *InMemoryChatStore) SeedMessage(ctx context.Context, m *chat.Message) error {
	return s.messages.Create(ctx, m.ID, copyMessage(m))
}

func (s *InMemoryChatStore) ListChats(ctx context.Context, filter *types.ChatFilter) (*chat.ListResult, error) {
	if filter == nil {
		filter = types.NewChatFilter()
	}

	chats, err := s.chats.List(ctx, filter, chatFilterFn, chatSortFn)
	if err != nil {
		return nil, err
	}

	items, pagination := paginate(chats, filter.QueryFilter)
	return &chat.ListResult{Items: items, Pagination: pagination}, nil
}

func (s *InMemoryChatStore) ListMessages(ctx context.Context, chatID string, filter *types.ChatFilter) (*chat.MessageList, error) {
	if filter == nil {
		filter = types.NewChatFilter()
	}

	all, err := s.messages.List(ctx, nil, nil, messageSortFn)
	if err != nil {
		return nil, err
	}

	var scoped []*chat.Message
	for _, m := range all {
		if m.ChatID == chatID {
			scoped = append(scoped, m)
		}
	}

	items, pagination := paginate(scoped, filter.QueryFilter)
	return &chat.MessageList{Items: items, Pagination: pagination}, nil
}

func (s *InMemoryChatStore) SendMessage(ctx context.Context, chatID, body string) (*chat.Message, error) {
	c, err := s.chats.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !c.Open {
		return nil, ierr.NewError("chat is closed").
			WithReportableDetails(map[string]interface{}{"chat_id": chatID}).
			Mark(ierr.ErrInvalidOperation)
	}

	msg := &chat.Message{
		ID:        ulid.Make().String(),
		ChatID:    chatID,
		SenderID:  types.GetActorID(ctx),
		FromAdmin: true,
		Body:      body,
		SentAt:    time.Now(),
	}
	if err := s.messages.Create(ctx, msg.ID, msg); err != nil {
		return nil, err
	}

	updated := copyChat(c)
	updated.LastMessage = body
	updated.UpdatedAt = msg.SentAt
	if err := s.chats.Update(ctx, chatID, updated); err != nil {
		return nil, err
	}

	return copyMessage(msg), nil
}

func (s *InMemoryChatStore) CloseChat(ctx context.Context, chatID string) error {
	c, err := s.chats.Get(ctx, chatID)
	if err != nil {
		return err
	}

	updated := copyChat(c)
	updated.Open = false
	updated.UpdatedAt = time.Now()
	return s.chats.Update(ctx, chatID, updated)
}

func (s *InMemoryChatStore) Clear() {
	s.chats.Clear()
	s.messages.Clear()
}

func chatFilterFn(ctx context.Context, c *chat.Chat, filter interface{}) bool {
	if c == nil {
		return false
	}

	f, ok := filter.(*types.ChatFilter)
	if !ok {
		return true
	}

	if f.Open != nil && c.Open != *f.Open {
		return false
	}
	if f.UserID != nil && c.UserID != *f.UserID {
		return false
	}
	return true
}

func chatSortFn(i, j *chat.Chat) bool {
	if i == nil || j == nil {
		return false
	}
	return i.UpdatedAt.After(j.UpdatedAt)
}

func messageSortFn(i, j *chat.Message) bool {
	if i == nil || j == nil {
		return false
	}
	return i.SentAt.Before(j.SentAt)
}
