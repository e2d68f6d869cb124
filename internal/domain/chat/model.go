package chat

import (
	"time"

	"github.com/vivahlink/console/internal/types"
)

// Chat is one support conversation between a user and the admin team.
type Chat struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Open        bool      `json:"open"`
	UnreadCount int       `json:"unread_count"`
	LastMessage string    `json:"last_message,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Message is one message inside a chat.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	FromAdmin bool      `json:"from_admin"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

// ListResult is one page of chats.
type ListResult struct {
	Items      []*Chat                  `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// MessageList is one page of a chat's messages.
type MessageList struct {
	Items      []*Message               `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}
