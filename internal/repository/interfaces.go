package repository

import (
	"context"
	"time"

	"github.com/aimhealth/growthos/backend/internal/models"
)

// ReferralRepository defines data access for referrals and referral sources
type ReferralRepository interface {
	GetSources(ctx context.Context) ([]models.ReferralSource, error)
	GetSourceByID(ctx context.Context, id string) (*models.ReferralSource, error)
	GetReferralsBetween(ctx context.Context, start, end time.Time) ([]models.Referral, error)
}

// AlertRepository defines data access for alert acknowledgment state.
// Alerts themselves are computed fresh each cycle and never stored; only the
// acknowledgment row persists.
type AlertRepository interface {
	Acknowledge(ctx context.Context, ack *models.AlertAck) (*models.AlertAck, error)
}

// PipelineRepository defines data access for funnel snapshots and bottlenecks
type PipelineRepository interface {
	GetLatestSnapshot(ctx context.Context) (*models.PipelineSnapshot, error)
	InsertSnapshot(ctx context.Context, snap *models.PipelineSnapshot) (*models.PipelineSnapshot, error)
	GetOpenBottlenecks(ctx context.Context) ([]models.Bottleneck, error)
	ResolveBottleneck(ctx context.Context, id string, req *models.ResolveBottleneckRequest) (*models.Bottleneck, error)
}

// QualityRepository defines data access for clinician visit records
type QualityRepository interface {
	GetRecordsBetween(ctx context.Context, start, end time.Time) ([]models.ClinicianRecord, error)
}
