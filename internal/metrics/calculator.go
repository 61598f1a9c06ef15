// Package metrics holds the pure calculation layer shared by the Growth OS
// dashboards: rate and trend reduction over raw rows, health classification,
// threshold alerting, and funnel conversion math. Nothing in this package
// performs I/O or returns an error; every function is total over its inputs.
package metrics

import (
	"math"

	"github.com/aimhealth/growthos/backend/internal/models"
)

// Product constants for trend and health classification. These mirror the
// thresholds the dashboard frontend renders against.
const (
	// TrendThresholdPct is the band around zero treated as stable movement
	TrendThresholdPct = 10.0

	// CriticalConversionRate marks a declining entity as critical below this rate
	CriticalConversionRate = 30.0

	// WarningConversionRate flags an entity regardless of trend below this rate
	WarningConversionRate = 50.0

	// WarningSLARate flags an entity whose SLA compliance drops below this rate
	WarningSLARate = 80.0
)

// Record carries the two boolean outcomes the rate calculators reduce over.
// Services map their domain rows (referrals, visits) into Records before
// calling in.
type Record struct {
	Converted bool
	SLAMet    bool
}

// ConversionRate returns the percentage of records marked converted.
// An empty slice yields 0, not NaN.
func ConversionRate(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	converted := 0
	for _, r := range records {
		if r.Converted {
			converted++
		}
	}
	return float64(converted) / float64(len(records)) * 100
}

// SLAComplianceRate returns the percentage of records that met the SLA.
// An empty slice yields 0.
func SLAComplianceRate(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	met := 0
	for _, r := range records {
		if r.SLAMet {
			met++
		}
	}
	return float64(met) / float64(len(records)) * 100
}

// TrendResult pairs the period-over-period change with its classification
type TrendResult struct {
	Direction  models.TrendDirection `json:"direction"`
	Percentage float64               `json:"percentage"`
}

// Trend compares a current-period volume against the previous period.
// When previous is zero the percentage is defined as 0 so a brand-new
// entity shows up stable instead of dividing by zero.
func Trend(current, previous float64) TrendResult {
	if previous == 0 {
		return TrendResult{Direction: models.TrendStable, Percentage: 0}
	}

	pct := (current - previous) / previous * 100

	direction := models.TrendStable
	if pct > TrendThresholdPct {
		direction = models.TrendUp
	} else if pct < -TrendThresholdPct {
		direction = models.TrendDown
	}

	return TrendResult{Direction: direction, Percentage: pct}
}

// Health classifies an entity from its trend and rates. The critical rule is
// evaluated first: a declining entity converting under 30% is critical even
// when its SLA compliance is fine.
func Health(direction models.TrendDirection, conversionRate, slaRate float64) models.HealthStatus {
	if direction == models.TrendDown && conversionRate < CriticalConversionRate {
		return models.HealthCritical
	}
	if direction == models.TrendDown || conversionRate < WarningConversionRate || slaRate < WarningSLARate {
		return models.HealthWarning
	}
	return models.HealthHealthy
}

// Abs is a convenience wrapper used when formatting decline percentages
func Abs(v float64) float64 {
	return math.Abs(v)
}
