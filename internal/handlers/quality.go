package handlers

import (
	"net/http"

	"github.com/aimhealth/growthos/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type QualityHandler struct {
	qualityService service.QualityService
}

// NewQualityHandler creates a new clinical-quality handler
func NewQualityHandler(qualityService service.QualityService) *QualityHandler {
	return &QualityHandler{
		qualityService: qualityService,
	}
}

// Dashboard handles GET /api/v1/quality/dashboard
func (h *QualityHandler) Dashboard(c *gin.Context) {
	dashboard := h.qualityService.Dashboard(c.Request.Context())
	c.JSON(http.StatusOK, dashboard)
}
