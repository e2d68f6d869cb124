package rest

import (
	"context"
	"fmt"
	"strings"

	domainChat "github.com/vivahlink/console/internal/domain/chat"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/upstream"
)

const pathChats = "/api/admin/support/chats"

type chatRepository struct {
	client upstream.Client
	log    *logger.Logger
}

func NewChatRepository(client upstream.Client, log *logger.Logger) domainChat.Repository {
	return &chatRepository{client: client, log: log}
}

func (r *chatRepository) ListChats(ctx context.Context, filter *types.ChatFilter) (*domainChat.ListResult, error) {
	if filter == nil {
		filter = types.NewChatFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var resp upstream.ListResponse[*domainChat.Chat]
	if err := r.client.Get(ctx, pathChats, filter.ToQuery(), &resp); err != nil {
		return nil, err
	}
	return &domainChat.ListResult{Items: resp.Items, Pagination: resp.Pagination}, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID string, filter *types.ChatFilter) (*domainChat.MessageList, error) {
	if chatID == "" {
		return nil, ierr.NewError("chat ID is required").
			WithHint("Please provide a valid chat ID").
			Mark(ierr.ErrValidation)
	}
	if filter == nil {
		filter = types.NewChatFilter()
	}

	var resp upstream.ListResponse[*domainChat.Message]
	path := fmt.Sprintf("%s/%s/messages", pathChats, chatID)
	if err := r.client.Get(ctx, path, filter.ToQuery(), &resp); err != nil {
		return nil, err
	}
	return &domainChat.MessageList{Items: resp.Items, Pagination: resp.Pagination}, nil
}

func (r *chatRepository) SendMessage(ctx context.Context, chatID, body string) (*domainChat.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ierr.NewError("message body is required").
			WithHint("Cannot send an empty message").
			Mark(ierr.ErrValidation)
	}

	payload := map[string]string{"body": body}
	var msg domainChat.Message
	if err := r.client.Post(ctx, fmt.Sprintf("%s/%s/messages", pathChats, chatID), payload, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *chatRepository) CloseChat(ctx context.Context, chatID string) error {
	return r.client.Patch(ctx, fmt.Sprintf("%s/%s/close", pathChats, chatID), nil, nil)
}
