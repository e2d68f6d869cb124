package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vivahlink/console/internal/api/dto"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/service"
	"github.com/vivahlink/console/internal/types"
)

// maxProofSize bounds payment-proof uploads at 10 MiB.
const maxProofSize = 10 << 20

type MembershipHandler struct {
	membershipService service.MembershipService
	logger            *logger.Logger
}

func NewMembershipHandler(membershipService service.MembershipService, logger *logger.Logger) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService, logger: logger}
}

func (h *MembershipHandler) List(c *gin.Context) {
	var filter types.MembershipFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(err)
		return
	}

	result, err := h.membershipService.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListMembershipsResponse(result))
}

func (h *MembershipHandler) ListPending(c *gin.Context) {
	var filter types.MembershipFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(err)
		return
	}

	result, err := h.membershipService.ListPending(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListMembershipsResponse(result))
}

func (h *MembershipHandler) Get(c *gin.Context) {
	m, err := h.membershipService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MembershipResponse{Membership: m})
}

func (h *MembershipHandler) Stats(c *gin.Context) {
	s, err := h.membershipService.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *MembershipHandler) Approve(c *gin.Context) {
	var req dto.ApproveMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	m, err := h.membershipService.Approve(c.Request.Context(), c.Param("id"), req.PaymentMethod, req.CashReceipt())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MembershipResponse{Membership: m})
}

func (h *MembershipHandler) Reject(c *gin.Context) {
	var req dto.RejectMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	m, err := h.membershipService.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MembershipResponse{Membership: m})
}

func (h *MembershipHandler) Cancel(c *gin.Context) {
	var req dto.RejectMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	m, err := h.membershipService.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MembershipResponse{Membership: m})
}

func (h *MembershipHandler) Reactivate(c *gin.Context) {
	m, err := h.membershipService.Reactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MembershipResponse{Membership: m})
}

func (h *MembershipHandler) UploadProof(c *gin.Context) {
	header, err := c.FormFile("proof")
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Attach the payment proof as the 'proof' form field").
			Mark(ierr.ErrValidation))
		return
	}
	if header.Size > maxProofSize {
		c.Error(ierr.NewError("proof file too large").
			WithHint("Payment proofs must be under 10 MB").
			Mark(ierr.ErrValidation))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.Error(ierr.WithError(err).Mark(ierr.ErrInternal))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.Error(ierr.WithError(err).Mark(ierr.ErrInternal))
		return
	}

	m, err := h.membershipService.UploadProof(c.Request.Context(), c.Param("id"), header.Filename, content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MembershipResponse{Membership: m})
}

func (h *MembershipHandler) BulkCancel(c *gin.Context) {
	var req dto.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}
	req.Action = types.BulkActionCancel
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	if err := h.membershipService.BulkCancel(c.Request.Context(), nil, req.IDs, req.Reason); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(req.IDs)})
}
