package service

import (
	"time"

	"github.com/aimhealth/growthos/backend/internal/metrics"
	"github.com/aimhealth/growthos/backend/internal/models"
)

// Demo fixtures served when a dashboard fetch fails or the project has no
// data yet. The payloads are fully deterministic, fixed timestamps included,
// so every fallback response is identical: the overview screens always render
// something sensible instead of an error state.

var demoComputedAt = time.Date(2025, time.May, 30, 12, 0, 0, 0, time.UTC)

func demoReferralDashboard() *models.ReferralDashboard {
	sources := []models.SourceMetrics{
		{
			SourceID:          "demo-src-metro",
			SourceName:        "Metro Sports Medicine",
			Relationship:      "standard",
			VolumeCurrent:     23,
			VolumePrevious:    48,
			ConversionRate:    34.8,
			SLAComplianceRate: 91.3,
			TrendDirection:    models.TrendDown,
			TrendPercentage:   (23.0 - 48.0) / 48.0 * 100,
			HealthStatus:      models.HealthWarning,
		},
		{
			SourceID:          "demo-src-harbor",
			SourceName:        "Harbor Orthopedic Group",
			Relationship:      "strategic",
			VolumeCurrent:     61,
			VolumePrevious:    54,
			ConversionRate:    72.1,
			SLAComplianceRate: 93.4,
			TrendDirection:    models.TrendUp,
			TrendPercentage:   (61.0 - 54.0) / 54.0 * 100,
			HealthStatus:      models.HealthHealthy,
		},
		{
			SourceID:          "demo-src-summit",
			SourceName:        "Summit Employer Health",
			Relationship:      "strategic",
			VolumeCurrent:     18,
			VolumePrevious:    19,
			ConversionRate:    44.4,
			SLAComplianceRate: 77.8,
			TrendDirection:    models.TrendStable,
			TrendPercentage:   (18.0 - 19.0) / 19.0 * 100,
			HealthStatus:      models.HealthWarning,
		},
		{
			SourceID:          "demo-src-lakeside",
			SourceName:        "Lakeside Family Practice",
			Relationship:      "standard",
			VolumeCurrent:     35,
			VolumePrevious:    33,
			ConversionRate:    65.7,
			SLAComplianceRate: 88.6,
			TrendDirection:    models.TrendStable,
			TrendPercentage:   (35.0 - 33.0) / 33.0 * 100,
			HealthStatus:      models.HealthHealthy,
		},
	}

	alerts := []models.Alert{
		{
			ID:               "demo-alert-1",
			SourceID:         "demo-src-metro",
			SourceName:       "Metro Sports Medicine",
			AlertType:        models.AlertVolumeDecline,
			Severity:         models.SeverityCritical,
			CurrentValue:     23,
			PreviousValue:    48,
			ChangePercentage: (23.0 - 48.0) / 48.0 * 100,
			Message:          "Metro Sports Medicine volume fell 52% versus the prior period",
			Recommendation:   "Schedule a relationship review with this source",
		},
		{
			ID:               "demo-alert-2",
			SourceID:         "demo-src-metro",
			SourceName:       "Metro Sports Medicine",
			AlertType:        models.AlertConversionDecline,
			Severity:         models.SeverityWarning,
			CurrentValue:     34.8,
			PreviousValue:    48,
			ChangePercentage: (23.0 - 48.0) / 48.0 * 100,
			Message:          "Metro Sports Medicine is converting at 34.8% over the current period",
			Recommendation:   "Review referral intake and qualification criteria",
		},
		{
			ID:             "demo-alert-3",
			SourceID:       "demo-src-summit",
			SourceName:     "Summit Employer Health",
			AlertType:      models.AlertRelationshipRisk,
			Severity:       models.SeverityInfo,
			CurrentValue:   44.4,
			PreviousValue:  19,
			Message:        "Summit Employer Health is a strategic account trending toward warning status",
			Recommendation: "Flag for the next partnership check-in",
		},
	}

	return &models.ReferralDashboard{
		Overview: models.ReferralOverview{
			TotalCurrent:      137,
			TotalPrevious:     154,
			AvgConversionRate: 58.4,
			AvgSLACompliance:  89.1,
			CriticalAlerts:    1,
			WarningAlerts:     1,
		},
		Sources:    sources,
		Alerts:     alerts,
		ComputedAt: demoComputedAt,
		DataSource: "demo",
	}
}

func demoRevOpsDashboard() *models.RevOpsDashboard {
	snapshot := &models.PipelineSnapshot{
		ID:                    "demo-snap-1",
		CapturedAt:            demoComputedAt.Add(-6 * time.Hour),
		MarketingLeads:        412,
		IntakeQualified:       198,
		AppointmentsScheduled: 149,
		AppointmentsCompleted: 121,
		Revenue:               378500,
	}

	// derive the funnel numbers with the real math so the demo payload stays
	// consistent with what a live snapshot would produce
	conversions := metrics.StageConversions(*snapshot)

	bottlenecks := []models.Bottleneck{
		{
			ID:                   "demo-bn-1",
			Stage:                models.StageIntakeQualified,
			Severity:             models.SeverityWarning,
			DelayedAppointments:  14,
			LostAppointments:     9,
			EstimatedRevenueLost: 22750,
			ContributingFactors: []string{
				"Intake team short-staffed on Mondays",
				"Insurance verification backlog over 48 hours",
			},
			RecommendedActions: []string{
				"Add a float coordinator to Monday intake",
				"Batch-verify benefits the evening before",
			},
			Status:    "open",
			CreatedAt: demoComputedAt.Add(-72 * time.Hour),
		},
	}

	return &models.RevOpsDashboard{
		Snapshot:          snapshot,
		StageConversions:  conversions,
		PrimaryBottleneck: metrics.PrimaryBottleneck(conversions),
		Bottlenecks:       bottlenecks,
		LeadToRevenueRate: metrics.LeadToRevenueRate(*snapshot),
		ComputedAt:        demoComputedAt,
		DataSource:        "demo",
	}
}

func demoQualityDashboard() *models.QualityDashboard {
	clinicians := []models.ClinicianMetrics{
		{
			ClinicianID:       "demo-clin-okafor",
			ClinicianName:     "Dr. A. Okafor",
			VolumeCurrent:     112,
			VolumePrevious:    104,
			PlanOfCareRate:    81.3,
			DocumentationRate: 94.6,
			TrendDirection:    models.TrendStable,
			TrendPercentage:   (112.0 - 104.0) / 104.0 * 100,
			HealthStatus:      models.HealthHealthy,
		},
		{
			ClinicianID:       "demo-clin-reyes",
			ClinicianName:     "Dr. M. Reyes",
			VolumeCurrent:     87,
			VolumePrevious:    90,
			PlanOfCareRate:    76.5,
			DocumentationRate: 68.2,
			TrendDirection:    models.TrendStable,
			TrendPercentage:   (87.0 - 90.0) / 90.0 * 100,
			HealthStatus:      models.HealthWarning,
		},
		{
			ClinicianID:       "demo-clin-whitfield",
			ClinicianName:     "J. Whitfield, PT",
			VolumeCurrent:     64,
			VolumePrevious:    98,
			PlanOfCareRate:    27.9,
			DocumentationRate: 85.1,
			TrendDirection:    models.TrendDown,
			TrendPercentage:   (64.0 - 98.0) / 98.0 * 100,
			HealthStatus:      models.HealthCritical,
		},
	}

	alerts := []models.Alert{
		{
			ID:               "demo-alert-q1",
			SourceID:         "demo-clin-whitfield",
			SourceName:       "J. Whitfield, PT",
			AlertType:        models.AlertVolumeDecline,
			Severity:         models.SeverityCritical,
			CurrentValue:     64,
			PreviousValue:    98,
			ChangePercentage: (64.0 - 98.0) / 98.0 * 100,
			Message:          "J. Whitfield, PT volume fell 35% versus the prior period",
			Recommendation:   "Schedule a relationship review with this source",
		},
		{
			ID:             "demo-alert-q2",
			SourceID:       "demo-clin-reyes",
			SourceName:     "Dr. M. Reyes",
			AlertType:      models.AlertSLABreach,
			Severity:       models.SeverityWarning,
			CurrentValue:   68.2,
			PreviousValue:  90,
			Message:        "Dr. M. Reyes first-contact SLA compliance is at 68.2%",
			Recommendation: "Review scheduling capacity and first-contact workflows",
		},
	}

	return &models.QualityDashboard{
		Overview: models.QualityOverview{
			TotalVisitsCurrent:   263,
			TotalVisitsPrevious:  292,
			AvgPlanOfCareRate:    66.5,
			AvgDocumentationRate: 83.6,
			CliniciansAtRisk:     2,
		},
		Clinicians: clinicians,
		Alerts:     alerts,
		ComputedAt: demoComputedAt,
		DataSource: "demo",
	}
}
