package service

import (
	"context"
	"sort"
	"time"

	"github.com/aimhealth/growthos/backend/internal/logger"
	"github.com/aimhealth/growthos/backend/internal/metrics"
	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

type qualityService struct {
	qualityRepo repository.QualityRepository
}

// NewQualityService creates the clinical-quality service
func NewQualityService(qualityRepo repository.QualityRepository) QualityService {
	return &qualityService{qualityRepo: qualityRepo}
}

// Dashboard assembles the clinical-quality payload from two windows of
// clinician visit records. Fetch failures and empty projects serve the demo
// payload, same as the other dashboards.
func (s *qualityService) Dashboard(ctx context.Context) *models.QualityDashboard {
	end := time.Now().UTC()
	mid := end.AddDate(0, 0, -WindowDays)
	start := mid.AddDate(0, 0, -WindowDays)

	var current, previous []models.ClinicianRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.qualityRepo.GetRecordsBetween(gctx, mid, end)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.qualityRepo.GetRecordsBetween(gctx, start, mid)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Ctx(ctx).Warn("quality dashboard fetch failed, serving demo data", logger.Err(err))
		return demoQualityDashboard()
	}

	if len(current) == 0 {
		logger.Ctx(ctx).Info("no clinician records found, serving demo data")
		return demoQualityDashboard()
	}

	clinicians := computeClinicianMetrics(current, previous)
	alerts := metrics.Evaluate(clinicianEntities(clinicians))

	return &models.QualityDashboard{
		Overview:   buildQualityOverview(current, previous, clinicians),
		Clinicians: clinicians,
		Alerts:     alerts,
		ComputedAt: time.Now().UTC(),
		DataSource: "live",
	}
}

// computeClinicianMetrics partitions visits by clinician and reduces each
// partition: plan-of-care completion plays the conversion role, on-time
// documentation the SLA role.
func computeClinicianMetrics(current, previous []models.ClinicianRecord) []models.ClinicianMetrics {
	currentByClinician := make(map[string][]models.ClinicianRecord)
	names := make(map[string]string)
	for _, rec := range current {
		currentByClinician[rec.ClinicianID] = append(currentByClinician[rec.ClinicianID], rec)
		names[rec.ClinicianID] = rec.ClinicianName
	}
	previousByClinician := make(map[string][]models.ClinicianRecord)
	for _, rec := range previous {
		previousByClinician[rec.ClinicianID] = append(previousByClinician[rec.ClinicianID], rec)
		if _, ok := names[rec.ClinicianID]; !ok {
			names[rec.ClinicianID] = rec.ClinicianName
		}
	}

	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]models.ClinicianMetrics, 0, len(ids))
	for _, id := range ids {
		cur := currentByClinician[id]
		prev := previousByClinician[id]

		records := clinicianRecords(cur)
		planRate := metrics.ConversionRate(records)
		docRate := metrics.SLAComplianceRate(records)
		trend := metrics.Trend(float64(len(cur)), float64(len(prev)))

		result = append(result, models.ClinicianMetrics{
			ClinicianID:       id,
			ClinicianName:     names[id],
			VolumeCurrent:     len(cur),
			VolumePrevious:    len(prev),
			PlanOfCareRate:    planRate,
			DocumentationRate: docRate,
			TrendDirection:    trend.Direction,
			TrendPercentage:   trend.Percentage,
			HealthStatus:      metrics.Health(trend.Direction, planRate, docRate),
		})
	}

	return result
}

func clinicianRecords(records []models.ClinicianRecord) []metrics.Record {
	result := make([]metrics.Record, 0, len(records))
	for _, r := range records {
		result = append(result, metrics.Record{Converted: r.PlanOfCareMet, SLAMet: r.NoteClosedOnTime})
	}
	return result
}

// clinicianEntities maps clinician metrics into the shape the alert engine
// evaluates, so both dashboards share the same threshold rules.
func clinicianEntities(clinicians []models.ClinicianMetrics) []models.SourceMetrics {
	entities := make([]models.SourceMetrics, 0, len(clinicians))
	for _, c := range clinicians {
		entities = append(entities, models.SourceMetrics{
			SourceID:          c.ClinicianID,
			SourceName:        c.ClinicianName,
			VolumeCurrent:     c.VolumeCurrent,
			VolumePrevious:    c.VolumePrevious,
			ConversionRate:    c.PlanOfCareRate,
			SLAComplianceRate: c.DocumentationRate,
			TrendDirection:    c.TrendDirection,
			TrendPercentage:   c.TrendPercentage,
			HealthStatus:      c.HealthStatus,
		})
	}
	return entities
}

func buildQualityOverview(current, previous []models.ClinicianRecord, clinicians []models.ClinicianMetrics) models.QualityOverview {
	records := clinicianRecords(current)

	atRisk := 0
	for _, c := range clinicians {
		if c.HealthStatus != models.HealthHealthy {
			atRisk++
		}
	}

	return models.QualityOverview{
		TotalVisitsCurrent:   len(current),
		TotalVisitsPrevious:  len(previous),
		AvgPlanOfCareRate:    metrics.ConversionRate(records),
		AvgDocumentationRate: metrics.SLAComplianceRate(records),
		CliniciansAtRisk:     atRisk,
	}
}
