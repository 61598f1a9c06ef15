package metrics

import (
	"testing"

	"github.com/aimhealth/growthos/backend/internal/models"
)

func sampleSnapshot() models.PipelineSnapshot {
	return models.PipelineSnapshot{
		MarketingLeads:        200,
		IntakeQualified:       120,
		AppointmentsScheduled: 90,
		AppointmentsCompleted: 72,
		Revenue:               184000,
	}
}

func TestStageConversions(t *testing.T) {
	conversions := StageConversions(sampleSnapshot())
	if len(conversions) != 3 {
		t.Fatalf("expected 3 stage conversions, got %d", len(conversions))
	}

	wantRates := []float64{60, 75, 80}
	for i, want := range wantRates {
		if conversions[i].Rate != want {
			t.Errorf("conversion %d rate = %v, want %v", i, conversions[i].Rate, want)
		}
	}

	if conversions[0].From != models.StageMarketingLeads || conversions[0].To != models.StageIntakeQualified {
		t.Errorf("first conversion stages wrong: %+v", conversions[0])
	}
}

func TestStageConversionsZeroUpstream(t *testing.T) {
	snap := models.PipelineSnapshot{} // all zero
	for _, c := range StageConversions(snap) {
		if c.Rate != 0 {
			t.Errorf("zero snapshot should yield 0%% rates, got %v for %s", c.Rate, c.From)
		}
	}
}

func TestPrimaryBottleneck(t *testing.T) {
	conversions := StageConversions(sampleSnapshot())
	worst := PrimaryBottleneck(conversions)
	if worst == nil {
		t.Fatal("expected a bottleneck")
	}
	if worst.From != models.StageMarketingLeads {
		t.Errorf("bottleneck = %s->%s, want the 60%% lead->qualified hand-off", worst.From, worst.To)
	}

	if PrimaryBottleneck(nil) != nil {
		t.Error("empty conversions should yield nil bottleneck")
	}
}

func TestLeadToRevenueRate(t *testing.T) {
	if got := LeadToRevenueRate(sampleSnapshot()); got != 36 {
		t.Errorf("LeadToRevenueRate = %v, want 36", got)
	}
	if got := LeadToRevenueRate(models.PipelineSnapshot{}); got != 0 {
		t.Errorf("zero leads should yield 0, got %v", got)
	}
}

func TestStageSeverity(t *testing.T) {
	cases := []struct {
		rate float64
		want models.Severity
	}{
		{10, models.SeverityCritical},
		{24.9, models.SeverityCritical},
		{25, models.SeverityWarning},
		{49.9, models.SeverityWarning},
		{50, models.SeverityInfo},
		{90, models.SeverityInfo},
	}

	for _, tc := range cases {
		if got := stageSeverity(tc.rate); got != tc.want {
			t.Errorf("stageSeverity(%v) = %v, want %v", tc.rate, got, tc.want)
		}
	}
}
