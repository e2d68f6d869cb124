package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/service"
)

type SessionHandler struct {
	sessionService service.SessionService
	logger         *logger.Logger
}

func NewSessionHandler(sessionService service.SessionService, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, logger: logger}
}

// Logout drops every cached view so nothing from the session survives.
func (h *SessionHandler) Logout(c *gin.Context) {
	h.sessionService.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}
