package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
	logger       *logger.Logger
}

func NewStatsHandler(statsService service.StatsService, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{statsService: statsService, logger: logger}
}

func (h *StatsHandler) Dashboard(c *gin.Context) {
	d, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, d)
}
