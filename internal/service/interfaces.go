package service

import (
	"context"

	"github.com/aimhealth/growthos/backend/internal/models"
)

// ReferralService defines the referral-intelligence business logic
type ReferralService interface {
	// Dashboard assembles the referral dashboard. It never returns an
	// error: fetch failures produce the demo payload instead.
	Dashboard(ctx context.Context) *models.ReferralDashboard
	ListSources(ctx context.Context) ([]models.ReferralSource, error)
	GetSource(ctx context.Context, id string) (*models.ReferralSource, error)
	AcknowledgeAlert(ctx context.Context, req *models.AcknowledgeAlertRequest) (*models.AlertAck, error)
}

// RevOpsService defines the revenue-operations business logic
type RevOpsService interface {
	// Dashboard assembles the revops dashboard, falling back to the demo
	// payload on fetch failure.
	Dashboard(ctx context.Context) *models.RevOpsDashboard
	ResolveBottleneck(ctx context.Context, id string, req *models.ResolveBottleneckRequest) (*models.Bottleneck, error)
	RecordSnapshot(ctx context.Context, snap *models.PipelineSnapshot) (*models.PipelineSnapshot, error)
}

// QualityService defines the clinical-quality business logic
type QualityService interface {
	Dashboard(ctx context.Context) *models.QualityDashboard
}
