package chat

import (
	"context"

	"github.com/vivahlink/console/internal/cache"
	"github.com/vivahlink/console/internal/types"
)

// Repository covers the polling-only chat endpoints. There is no push
// channel: the console reads chats purely through cache keys with a fixed
// refetch interval.
type Repository interface {
	ListChats(ctx context.Context, filter *types.ChatFilter) (*ListResult, error)
	ListMessages(ctx context.Context, chatID string, filter *types.ChatFilter) (*MessageList, error)
	SendMessage(ctx context.Context, chatID, body string) (*Message, error)
	CloseChat(ctx context.Context, chatID string) error
}

// ListKey is the cache key for the support-chat list (polled at 5s while
// the support tab is active).
func ListKey(filter *types.ChatFilter) cache.Key {
	return cache.NewKey(cache.ResourceSupportChats, filter.ScopeParams())
}

// MessagesKey is the cache key for an open chat's messages (polled at 3s).
func MessagesKey(chatID string, filter *types.ChatFilter) cache.Key {
	params := filter.ScopeParams()
	params["chat_id"] = chatID
	return cache.NewKey(cache.ResourceChatMessages, params)
}
