package metrics

import (
	"fmt"
	"sort"

	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/google/uuid"
)

// Alerting thresholds. Kept as a single const block so the rules read in one
// place; the frontend documents the same numbers in its legend copy.
const (
	// VolumeDeclinePct triggers a critical alert when a declining entity
	// has fallen further than this
	VolumeDeclinePct = 30.0

	// ConversionAlertRate and ConversionAlertMinVolume gate the
	// conversion-decline warning; tiny sources are skipped
	ConversionAlertRate      = 40.0
	ConversionAlertMinVolume = 5

	// SLAAlertRate gates the SLA-breach alert; below SLACriticalRate the
	// alert escalates from warning to critical
	SLAAlertRate      = 70.0
	SLACriticalRate   = 50.0
	SLAAlertMinVolume = 3
)

// EvaluateSource runs the three threshold rules against one entity's metrics,
// in fixed order. Each rule fires independently, so an entity can produce
// zero to three alerts.
func EvaluateSource(m models.SourceMetrics) []models.Alert {
	var alerts []models.Alert

	// Rule 1: volume decline
	if m.TrendDirection == models.TrendDown && Abs(m.TrendPercentage) > VolumeDeclinePct {
		alerts = append(alerts, models.Alert{
			ID:               uuid.New().String(),
			SourceID:         m.SourceID,
			SourceName:       m.SourceName,
			AlertType:        models.AlertVolumeDecline,
			Severity:         models.SeverityCritical,
			CurrentValue:     float64(m.VolumeCurrent),
			PreviousValue:    float64(m.VolumePrevious),
			ChangePercentage: m.TrendPercentage,
			Message:          fmt.Sprintf("%s volume fell %.0f%% versus the prior period", m.SourceName, Abs(m.TrendPercentage)),
			Recommendation:   "Schedule a relationship review with this source",
		})
	}

	// Rule 2: conversion decline
	if m.ConversionRate < ConversionAlertRate && m.VolumeCurrent > ConversionAlertMinVolume {
		alerts = append(alerts, models.Alert{
			ID:               uuid.New().String(),
			SourceID:         m.SourceID,
			SourceName:       m.SourceName,
			AlertType:        models.AlertConversionDecline,
			Severity:         models.SeverityWarning,
			CurrentValue:     m.ConversionRate,
			PreviousValue:    float64(m.VolumePrevious),
			ChangePercentage: m.TrendPercentage,
			Message:          fmt.Sprintf("%s is converting at %.1f%% over the current period", m.SourceName, m.ConversionRate),
			Recommendation:   "Review referral intake and qualification criteria",
		})
	}

	// Rule 3: SLA breach
	if m.SLAComplianceRate < SLAAlertRate && m.VolumeCurrent > SLAAlertMinVolume {
		severity := models.SeverityWarning
		if m.SLAComplianceRate < SLACriticalRate {
			severity = models.SeverityCritical
		}
		alerts = append(alerts, models.Alert{
			ID:               uuid.New().String(),
			SourceID:         m.SourceID,
			SourceName:       m.SourceName,
			AlertType:        models.AlertSLABreach,
			Severity:         severity,
			CurrentValue:     m.SLAComplianceRate,
			PreviousValue:    float64(m.VolumePrevious),
			ChangePercentage: m.TrendPercentage,
			Message:          fmt.Sprintf("%s first-contact SLA compliance is at %.1f%%", m.SourceName, m.SLAComplianceRate),
			Recommendation:   "Review scheduling capacity and first-contact workflows",
		})
	}

	return alerts
}

// Evaluate runs EvaluateSource over every entity and returns the combined
// list sorted by severity. The sort is stable so entities keep their relative
// order within a severity tier.
func Evaluate(all []models.SourceMetrics) []models.Alert {
	alerts := make([]models.Alert, 0)
	for _, m := range all {
		alerts = append(alerts, EvaluateSource(m)...)
	}
	SortBySeverity(alerts)
	return alerts
}

// SortBySeverity orders alerts critical < warning < info, preserving input
// order within equal severities.
func SortBySeverity(alerts []models.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) < severityRank(alerts[j].Severity)
	})
}

func severityRank(s models.Severity) int {
	switch s {
	case models.SeverityCritical:
		return 0
	case models.SeverityWarning:
		return 1
	default:
		return 2
	}
}
