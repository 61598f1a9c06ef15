package metrics

import "github.com/aimhealth/growthos/backend/internal/models"

// Funnel conversion cutoffs for stage severity classification
const (
	FunnelCriticalRate = 25.0
	FunnelWarningRate  = 50.0
)

// StageConversions computes the hand-off rate between each pair of adjacent
// counted funnel stages in a snapshot. A zero upstream count yields a 0% rate
// rather than a division error.
func StageConversions(snap models.PipelineSnapshot) []models.StageConversion {
	// revenue is a dollar rollup, not a count, so conversions stop at
	// appointments_completed
	stages := models.FunnelStages[:4]

	conversions := make([]models.StageConversion, 0, len(stages)-1)
	for i := 0; i < len(stages)-1; i++ {
		from, to := stages[i], stages[i+1]
		fromVal := snap.StageCount(from)
		toVal := snap.StageCount(to)

		rate := 0.0
		if fromVal > 0 {
			rate = float64(toVal) / float64(fromVal) * 100
		}

		conversions = append(conversions, models.StageConversion{
			From:     from,
			To:       to,
			FromVal:  fromVal,
			ToVal:    toVal,
			Rate:     rate,
			Severity: stageSeverity(rate),
		})
	}

	return conversions
}

// PrimaryBottleneck returns the stage conversion with the lowest rate, or nil
// for an empty list. Ties resolve to the earliest stage in the funnel.
func PrimaryBottleneck(conversions []models.StageConversion) *models.StageConversion {
	if len(conversions) == 0 {
		return nil
	}

	worst := 0
	for i := 1; i < len(conversions); i++ {
		if conversions[i].Rate < conversions[worst].Rate {
			worst = i
		}
	}

	c := conversions[worst]
	return &c
}

// LeadToRevenueRate is the end-to-end funnel yield: completed appointments
// over marketing leads.
func LeadToRevenueRate(snap models.PipelineSnapshot) float64 {
	if snap.MarketingLeads == 0 {
		return 0
	}
	return float64(snap.AppointmentsCompleted) / float64(snap.MarketingLeads) * 100
}

func stageSeverity(rate float64) models.Severity {
	switch {
	case rate < FunnelCriticalRate:
		return models.SeverityCritical
	case rate < FunnelWarningRate:
		return models.SeverityWarning
	default:
		return models.SeverityInfo
	}
}
