package handlers

import (
	"net/http"

	"github.com/aimhealth/growthos/backend/internal/apierror"
	"github.com/aimhealth/growthos/backend/internal/logger"
	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	referralService service.ReferralService
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralService service.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// Dashboard handles GET /api/v1/referrals/dashboard
// The service guarantees a payload, falling back to demo data on fetch
// failures, so this endpoint never returns an error status.
func (h *ReferralHandler) Dashboard(c *gin.Context) {
	dashboard := h.referralService.Dashboard(c.Request.Context())
	c.JSON(http.StatusOK, dashboard)
}

// ListSources handles GET /api/v1/referrals/sources
func (h *ReferralHandler) ListSources(c *gin.Context) {
	sources, err := h.referralService.ListSources(c.Request.Context())
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to list referral sources", logger.Err(err))
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": sources,
		"count":   len(sources),
	})
}

// GetSource handles GET /api/v1/referrals/sources/:id
func (h *ReferralHandler) GetSource(c *gin.Context) {
	id := c.Param("id")

	source, err := h.referralService.GetSource(c.Request.Context(), id)
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to get referral source",
			logger.String("source_id", id),
			logger.Err(err),
		)
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}
	if source == nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Referral source", id))
		return
	}

	c.JSON(http.StatusOK, source)
}

// AcknowledgeAlert handles POST /api/v1/alerts/acknowledge
// Unlike the dashboard reads, this is a write: failures propagate as errors.
func (h *ReferralHandler) AcknowledgeAlert(c *gin.Context) {
	var req struct {
		SourceID       string `json:"source_id"`
		AlertType      string `json:"alert_type"`
		AcknowledgedBy string `json:"acknowledged_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	var fieldErrors []apierror.FieldError
	if req.SourceID == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "source_id", Message: "is required", Code: "required"})
	}
	if req.AlertType == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "alert_type", Message: "is required", Code: "required"})
	}
	if req.AcknowledgedBy == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "acknowledged_by", Message: "is required", Code: "required"})
	}
	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	ack, err := h.referralService.AcknowledgeAlert(c.Request.Context(), &models.AcknowledgeAlertRequest{
		SourceID:       req.SourceID,
		AlertType:      models.AlertType(req.AlertType),
		AcknowledgedBy: req.AcknowledgedBy,
	})
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to acknowledge alert",
			logger.String("source_id", req.SourceID),
			logger.String("alert_type", req.AlertType),
			logger.Err(err),
		)
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, ack)
}
