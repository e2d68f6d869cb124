package dto

import (
	"strings"

	"github.com/vivahlink/console/internal/domain/chat"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/types"
	"github.com/vivahlink/console/internal/validator"
)

// SendMessageRequest posts one admin message into a support chat.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

func (r *SendMessageRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	r.Body = strings.TrimSpace(r.Body)
	if r.Body == "" {
		return ierr.NewError("message body is required").
			WithHint("Cannot send an empty message").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ListChatsResponse is one page of support chats.
type ListChatsResponse struct {
	Items      []*chat.Chat             `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// ListMessagesResponse is one page of a chat's messages.
type ListMessagesResponse struct {
	Items      []*chat.Message          `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}
