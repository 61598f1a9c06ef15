package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/aimhealth/growthos/backend/internal/apierror"
	"github.com/aimhealth/growthos/backend/internal/logger"
	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/internal/seed"
	"github.com/gin-gonic/gin"
)

// MinSeedNameLength is the shortest accepted seed name
const MinSeedNameLength = 3

// SeedApplier is the subset of the seed package the handler needs
type SeedApplier interface {
	Apply(ctx context.Context, seedName, sqlContent string) (*seed.Result, error)
}

type AdminHandler struct {
	adminKey string
	applier  SeedApplier // nil when no database URL is configured
}

// NewAdminHandler creates the admin handler. applier may be nil when the
// deployment has no direct database connection; seeding then reports the
// service as unavailable.
func NewAdminHandler(adminKey string, applier SeedApplier) *AdminHandler {
	return &AdminHandler{
		adminKey: adminKey,
		applier:  applier,
	}
}

// Seed handles POST /api/v1/admin/seed
// Authorization is checked before anything else: a bad or missing X-Admin-Key
// gets a 403 regardless of what the body contains.
func (h *AdminHandler) Seed(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	log := logger.Ctx(c.Request.Context())

	key := c.GetHeader("X-Admin-Key")
	if h.adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) != 1 {
		log.Warn("seed request rejected: invalid admin key",
			logger.String("client_ip", c.ClientIP()),
		)
		apierror.WriteProblem(c, apierror.NewForbiddenError(requestID))
		return
	}

	if h.applier == nil {
		log.Warn("seed request rejected: no database connection configured")
		apierror.WriteProblem(c, apierror.NewServiceUnavailableError(requestID, 300))
		return
	}

	var req models.SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	var fieldErrors []apierror.FieldError
	if req.SeedName == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "seed_name", Message: "is required", Code: "required"})
	} else if len(req.SeedName) < MinSeedNameLength {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "seed_name", Message: "must be at least 3 characters", Code: "too_short"})
	}
	if req.SQLContent == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "sql_content", Message: "is required", Code: "required"})
	}
	if len(fieldErrors) > 0 {
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	result, err := h.applier.Apply(c.Request.Context(), req.SeedName, req.SQLContent)
	if err != nil {
		log.Error("seed apply failed",
			logger.String("seed_name", req.SeedName),
			logger.Err(err),
		)
		// the transaction has rolled back; surface the database error so the
		// operator can fix the script and resubmit
		c.JSON(http.StatusInternalServerError, gin.H{
			"seed_name": req.SeedName,
			"status":    "error",
			"detail":    err.Error(),
		})
		return
	}

	log.Info("seed processed",
		logger.String("seed_name", result.SeedName),
		logger.String("status", result.Status),
	)
	c.JSON(http.StatusOK, result)
}
