package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aimhealth/growthos/backend/internal/logger"
	"github.com/aimhealth/growthos/backend/internal/metrics"
	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// WindowDays is the length of the comparison windows for all dashboards:
// the current period is the trailing 30 days, the previous period the 30
// days before that.
const WindowDays = 30

type referralService struct {
	referralRepo repository.ReferralRepository
	alertRepo    repository.AlertRepository
}

// NewReferralService creates the referral-intelligence service
func NewReferralService(referralRepo repository.ReferralRepository, alertRepo repository.AlertRepository) ReferralService {
	return &referralService{
		referralRepo: referralRepo,
		alertRepo:    alertRepo,
	}
}

// Dashboard assembles the referral-intelligence payload. The three fetches
// run concurrently and join before any computation; if any of them fails, or
// the project has no referral sources yet, the fixed demo payload is returned
// so the overview screen always renders.
func (s *referralService) Dashboard(ctx context.Context) *models.ReferralDashboard {
	end := time.Now().UTC()
	mid := end.AddDate(0, 0, -WindowDays)
	start := mid.AddDate(0, 0, -WindowDays)

	var (
		sources  []models.ReferralSource
		current  []models.Referral
		previous []models.Referral
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sources, err = s.referralRepo.GetSources(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		current, err = s.referralRepo.GetReferralsBetween(gctx, mid, end)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.referralRepo.GetReferralsBetween(gctx, start, mid)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Ctx(ctx).Warn("referral dashboard fetch failed, serving demo data", logger.Err(err))
		return demoReferralDashboard()
	}

	if len(sources) == 0 {
		logger.Ctx(ctx).Info("no referral sources found, serving demo data")
		return demoReferralDashboard()
	}

	sourceMetrics := computeSourceMetrics(sources, current, previous)
	alerts := metrics.Evaluate(sourceMetrics)

	return &models.ReferralDashboard{
		Overview:   buildReferralOverview(current, previous, alerts),
		Sources:    sourceMetrics,
		Alerts:     alerts,
		ComputedAt: time.Now().UTC(),
		DataSource: "live",
	}
}

// computeSourceMetrics partitions referrals by source and reduces each
// partition into a SourceMetrics row. Sources with no referrals in either
// window still appear, with zero rates.
func computeSourceMetrics(sources []models.ReferralSource, current, previous []models.Referral) []models.SourceMetrics {
	currentBySource := make(map[string][]models.Referral)
	for _, ref := range current {
		currentBySource[ref.SourceID] = append(currentBySource[ref.SourceID], ref)
	}
	previousBySource := make(map[string][]models.Referral)
	for _, ref := range previous {
		previousBySource[ref.SourceID] = append(previousBySource[ref.SourceID], ref)
	}

	result := make([]models.SourceMetrics, 0, len(sources))
	for _, src := range sources {
		cur := currentBySource[src.ID]
		prev := previousBySource[src.ID]

		records := referralRecords(cur)
		conversionRate := metrics.ConversionRate(records)
		slaRate := metrics.SLAComplianceRate(records)
		trend := metrics.Trend(float64(len(cur)), float64(len(prev)))

		result = append(result, models.SourceMetrics{
			SourceID:          src.ID,
			SourceName:        src.Name,
			Relationship:      src.Relationship,
			VolumeCurrent:     len(cur),
			VolumePrevious:    len(prev),
			ConversionRate:    conversionRate,
			SLAComplianceRate: slaRate,
			TrendDirection:    trend.Direction,
			TrendPercentage:   trend.Percentage,
			HealthStatus:      metrics.Health(trend.Direction, conversionRate, slaRate),
		})
	}

	return result
}

func referralRecords(referrals []models.Referral) []metrics.Record {
	records := make([]metrics.Record, 0, len(referrals))
	for _, r := range referrals {
		records = append(records, metrics.Record{Converted: r.Converted, SLAMet: r.SLAMet})
	}
	return records
}

// buildReferralOverview computes the headline numbers. The average rates are
// volume-weighted: total conversions over total referrals, not a mean of
// per-source rates.
func buildReferralOverview(current, previous []models.Referral, alerts []models.Alert) models.ReferralOverview {
	records := referralRecords(current)

	criticalCount := 0
	warningCount := 0
	for _, a := range alerts {
		switch a.Severity {
		case models.SeverityCritical:
			criticalCount++
		case models.SeverityWarning:
			warningCount++
		}
	}

	return models.ReferralOverview{
		TotalCurrent:      len(current),
		TotalPrevious:     len(previous),
		AvgConversionRate: metrics.ConversionRate(records),
		AvgSLACompliance:  metrics.SLAComplianceRate(records),
		CriticalAlerts:    criticalCount,
		WarningAlerts:     warningCount,
	}
}

func (s *referralService) ListSources(ctx context.Context) ([]models.ReferralSource, error) {
	sources, err := s.referralRepo.GetSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list referral sources: %w", err)
	}
	return sources, nil
}

func (s *referralService) GetSource(ctx context.Context, id string) (*models.ReferralSource, error) {
	source, err := s.referralRepo.GetSourceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get referral source: %w", err)
	}
	return source, nil
}

// AcknowledgeAlert records that an operator has seen a computed alert. This
// is a pass-through write: errors propagate, there is no demo fallback for a
// mutation.
func (s *referralService) AcknowledgeAlert(ctx context.Context, req *models.AcknowledgeAlertRequest) (*models.AlertAck, error) {
	ack := &models.AlertAck{
		SourceID:       req.SourceID,
		AlertType:      req.AlertType,
		Status:         "acknowledged",
		AcknowledgedBy: req.AcknowledgedBy,
		AcknowledgedAt: time.Now().UTC(),
	}

	saved, err := s.alertRepo.Acknowledge(ctx, ack)
	if err != nil {
		return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
	}

	return saved, nil
}
