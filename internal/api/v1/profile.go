package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivahlink/console/internal/api/dto"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/service"
	"github.com/vivahlink/console/internal/types"
)

type ProfileHandler struct {
	profileService      service.ProfileService
	verificationService service.VerificationService
	logger              *logger.Logger
}

func NewProfileHandler(
	profileService service.ProfileService,
	verificationService service.VerificationService,
	logger *logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profileService:      profileService,
		verificationService: verificationService,
		logger:              logger,
	}
}

func (h *ProfileHandler) List(c *gin.Context) {
	var filter types.ProfileFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(err)
		return
	}

	result, err := h.profileService.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListProfilesResponse(result))
}

func (h *ProfileHandler) ListDeleted(c *gin.Context) {
	var filter types.DeletedProfileFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(err)
		return
	}

	result, err := h.profileService.ListDeleted(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListProfilesResponse(result))
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profileService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{Profile: p})
}

func (h *ProfileHandler) Approve(c *gin.Context) {
	p, err := h.verificationService.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{Profile: p})
}

func (h *ProfileHandler) Reject(c *gin.Context) {
	var req dto.RejectProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	p, err := h.verificationService.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{Profile: p})
}

func (h *ProfileHandler) Reapply(c *gin.Context) {
	p, err := h.verificationService.Reapply(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{Profile: p})
}

func (h *ProfileHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *ProfileHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *ProfileHandler) setActive(c *gin.Context, active bool) {
	if err := h.profileService.SetActive(c.Request.Context(), c.Param("id"), active); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) Block(c *gin.Context) {
	var req dto.BlockProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	if err := h.profileService.Block(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) Unblock(c *gin.Context) {
	if err := h.profileService.Unblock(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profileService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) Restore(c *gin.Context) {
	if err := h.profileService.Restore(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) Bulk(c *gin.Context) {
	var req dto.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	err := h.profileService.Bulk(c.Request.Context(), nil, req.Action, req.IDs, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(req.IDs)})
}
