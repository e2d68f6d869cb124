package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivahlink/console/internal/api/dto"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/service"
	"github.com/vivahlink/console/internal/types"
)

type VendorHandler struct {
	vendorService service.VendorService
	logger        *logger.Logger
}

func NewVendorHandler(vendorService service.VendorService, logger *logger.Logger) *VendorHandler {
	return &VendorHandler{vendorService: vendorService, logger: logger}
}

func (h *VendorHandler) List(c *gin.Context) {
	var filter types.VendorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(err)
		return
	}

	result, err := h.vendorService.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListVendorsResponse(result))
}

func (h *VendorHandler) Get(c *gin.Context) {
	v, err := h.vendorService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.VendorResponse{Vendor: v})
}

func (h *VendorHandler) Approve(c *gin.Context) {
	if err := h.vendorService.Approve(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *VendorHandler) Reject(c *gin.Context) {
	var req dto.RejectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	if err := h.vendorService.Reject(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *VendorHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *VendorHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *VendorHandler) setActive(c *gin.Context, active bool) {
	if err := h.vendorService.SetActive(c.Request.Context(), c.Param("id"), active); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *VendorHandler) Bulk(c *gin.Context) {
	var req dto.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	if err := h.vendorService.Bulk(c.Request.Context(), nil, req.Action, req.IDs, req.Reason); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(req.IDs)})
}
