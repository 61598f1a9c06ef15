package handlers

import (
	"net/http"

	"github.com/aimhealth/growthos/backend/internal/apierror"
	"github.com/aimhealth/growthos/backend/internal/logger"
	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type RevOpsHandler struct {
	revOpsService service.RevOpsService
}

// NewRevOpsHandler creates a new revenue-operations handler
func NewRevOpsHandler(revOpsService service.RevOpsService) *RevOpsHandler {
	return &RevOpsHandler{
		revOpsService: revOpsService,
	}
}

// Dashboard handles GET /api/v1/revops/dashboard
func (h *RevOpsHandler) Dashboard(c *gin.Context) {
	dashboard := h.revOpsService.Dashboard(c.Request.Context())
	c.JSON(http.StatusOK, dashboard)
}

// ResolveBottleneck handles POST /api/v1/revops/bottlenecks/:id/resolve
func (h *RevOpsHandler) ResolveBottleneck(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		ResolvedBy string `json:"resolved_by"`
		Resolution string `json:"resolution"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	if req.ResolvedBy == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "resolved_by", Message: "is required", Code: "required"},
		}))
		return
	}

	bottleneck, err := h.revOpsService.ResolveBottleneck(c.Request.Context(), id, &models.ResolveBottleneckRequest{
		ResolvedBy: req.ResolvedBy,
		Resolution: req.Resolution,
	})
	if err != nil {
		logger.Ctx(c.Request.Context()).Error("failed to resolve bottleneck",
			logger.String("bottleneck_id", id),
			logger.Err(err),
		)
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}
	if bottleneck == nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Bottleneck", id))
		return
	}

	c.JSON(http.StatusOK, bottleneck)
}
