package v1

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/vivahlink/console/internal/api/dto"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/service"
	"github.com/vivahlink/console/internal/types"
)

type ChatHandler struct {
	chatService service.ChatService
	logger      *logger.Logger

	mu      sync.Mutex
	watches map[string]func()
}

func NewChatHandler(chatService service.ChatService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
		watches:     make(map[string]func()),
	}
}

func (h *ChatHandler) List(c *gin.Context) {
	var filter types.ChatFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(err)
		return
	}

	result, err := h.chatService.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, &dto.ListChatsResponse{Items: result.Items, Pagination: result.Pagination})
}

func (h *ChatHandler) Messages(c *gin.Context) {
	var filter types.ChatFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(err)
		return
	}

	result, err := h.chatService.Messages(c.Request.Context(), c.Param("id"), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, &dto.ListMessagesResponse{Items: result.Items, Pagination: result.Pagination})
}

// WatchList begins background polling of the chat list and returns a
// watch id the caller uses to stop it.
func (h *ChatHandler) WatchList(c *gin.Context) {
	var filter types.ChatFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(err)
		return
	}

	stop := h.chatService.WatchList(watchContext(c), &filter)
	c.JSON(http.StatusOK, gin.H{"watch_id": h.track(stop)})
}

// WatchMessages begins background polling of one chat's messages.
func (h *ChatHandler) WatchMessages(c *gin.Context) {
	stop := h.chatService.WatchMessages(watchContext(c), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"watch_id": h.track(stop)})
}

// Unwatch stops a previously started watch. Unknown ids are rejected so
// callers notice leaked or double-stopped watches.
func (h *ChatHandler) Unwatch(c *gin.Context) {
	id := c.Param("watch_id")

	h.mu.Lock()
	stop, ok := h.watches[id]
	delete(h.watches, id)
	h.mu.Unlock()

	if !ok {
		c.Error(ierr.NewError("unknown watch id").
			WithHint("The watch was already stopped or never existed").
			Mark(ierr.ErrNotFound))
		return
	}

	stop()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), c.Param("id"), req.Body)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h *ChatHandler) Close(c *gin.Context) {
	if err := h.chatService.CloseChat(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// watchContext detaches the request context so the poller outlives the
// request. Values (session token, actor) survive; only cancellation is
// dropped, since the watch ends via its stop function, not the request.
func watchContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func (h *ChatHandler) track(stop func()) string {
	id := ulid.Make().String()
	h.mu.Lock()
	h.watches[id] = stop
	h.mu.Unlock()
	return id
}
