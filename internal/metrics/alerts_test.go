package metrics

import (
	"strings"
	"testing"

	"github.com/aimhealth/growthos/backend/internal/models"
)

func TestEvaluateSourceVolumeDeclineOnly(t *testing.T) {
	m := models.SourceMetrics{
		SourceID:          "src-1",
		SourceName:        "Harbor Orthopedics",
		VolumeCurrent:     50,
		VolumePrevious:    80,
		ConversionRate:    90,
		SLAComplianceRate: 95,
		TrendDirection:    models.TrendDown,
		TrendPercentage:   -35,
	}

	alerts := EvaluateSource(m)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(alerts))
	}
	if alerts[0].AlertType != models.AlertVolumeDecline {
		t.Errorf("alert type = %v, want volume_decline", alerts[0].AlertType)
	}
	if alerts[0].Severity != models.SeverityCritical {
		t.Errorf("severity = %v, want critical", alerts[0].Severity)
	}
}

func TestEvaluateSourceConversionDeclineOnly(t *testing.T) {
	m := models.SourceMetrics{
		SourceID:          "src-2",
		SourceName:        "Lakeside Family Practice",
		VolumeCurrent:     10,
		ConversionRate:    35,
		SLAComplianceRate: 95,
		TrendDirection:    models.TrendStable,
	}

	alerts := EvaluateSource(m)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(alerts))
	}
	if alerts[0].AlertType != models.AlertConversionDecline {
		t.Errorf("alert type = %v, want conversion_decline", alerts[0].AlertType)
	}
	if alerts[0].Severity != models.SeverityWarning {
		t.Errorf("severity = %v, want warning", alerts[0].Severity)
	}
}

func TestEvaluateSourceNoAlerts(t *testing.T) {
	m := models.SourceMetrics{
		SourceID:          "src-3",
		SourceName:        "Summit Spine",
		VolumeCurrent:     40,
		VolumePrevious:    38,
		ConversionRate:    70,
		SLAComplianceRate: 90,
		TrendDirection:    models.TrendStable,
		TrendPercentage:   5.2,
	}

	if alerts := EvaluateSource(m); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %d", len(alerts))
	}
}

func TestEvaluateSourceSLABreachEscalation(t *testing.T) {
	m := models.SourceMetrics{
		SourceID:          "src-4",
		SourceName:        "Eastgate Clinic",
		VolumeCurrent:     12,
		ConversionRate:    80,
		SLAComplianceRate: 65,
		TrendDirection:    models.TrendStable,
	}

	alerts := EvaluateSource(m)
	if len(alerts) != 1 || alerts[0].AlertType != models.AlertSLABreach {
		t.Fatalf("expected a single sla_breach alert, got %+v", alerts)
	}
	if alerts[0].Severity != models.SeverityWarning {
		t.Errorf("sla at 65 should be warning, got %v", alerts[0].Severity)
	}

	m.SLAComplianceRate = 45
	alerts = EvaluateSource(m)
	if len(alerts) != 1 || alerts[0].Severity != models.SeverityCritical {
		t.Fatalf("sla at 45 should escalate to critical, got %+v", alerts)
	}
}

func TestEvaluateSourceSmallVolumeSkipped(t *testing.T) {
	// Below the minimum volumes neither the conversion nor the SLA rule fires
	m := models.SourceMetrics{
		SourceID:          "src-5",
		SourceName:        "Corner Wellness",
		VolumeCurrent:     3,
		ConversionRate:    10,
		SLAComplianceRate: 20,
		TrendDirection:    models.TrendStable,
	}

	if alerts := EvaluateSource(m); len(alerts) != 0 {
		t.Errorf("expected no alerts for tiny volume, got %d", len(alerts))
	}
}

// Metro Sports Medicine scenario: 23 referrals this window against 48 in the
// prior one is a 52% decline and must surface as a critical volume alert.
func TestMetroSportsMedicineScenario(t *testing.T) {
	trend := Trend(23, 48)
	wantPct := (23.0 - 48.0) / 48.0 * 100
	if diff := trend.Percentage - wantPct; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("trend percentage = %v, want %v", trend.Percentage, wantPct)
	}
	if trend.Direction != models.TrendDown {
		t.Fatalf("trend direction = %v, want down", trend.Direction)
	}

	m := models.SourceMetrics{
		SourceID:          "src-metro",
		SourceName:        "Metro Sports Medicine",
		VolumeCurrent:     23,
		VolumePrevious:    48,
		ConversionRate:    60,
		SLAComplianceRate: 90,
		TrendDirection:    trend.Direction,
		TrendPercentage:   trend.Percentage,
	}

	alerts := EvaluateSource(m)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.AlertType != models.AlertVolumeDecline || a.Severity != models.SeverityCritical {
		t.Errorf("got %v/%v, want volume_decline/critical", a.AlertType, a.Severity)
	}
	if !strings.Contains(a.Message, "52%") {
		t.Errorf("message %q should mention the 52%% decline", a.Message)
	}
}

// A source can trip the volume and conversion rules at once; both alerts must
// be present in the output.
func TestEvaluateSourceDoubleAlert(t *testing.T) {
	trend := Trend(23, 48)
	m := models.SourceMetrics{
		SourceID:          "src-double",
		SourceName:        "Riverbend Pediatrics",
		VolumeCurrent:     23,
		VolumePrevious:    48,
		ConversionRate:    34.8,
		SLAComplianceRate: 90,
		TrendDirection:    trend.Direction,
		TrendPercentage:   trend.Percentage,
	}

	alerts := EvaluateSource(m)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}

	types := map[models.AlertType]bool{}
	for _, a := range alerts {
		types[a.AlertType] = true
	}
	if !types[models.AlertVolumeDecline] || !types[models.AlertConversionDecline] {
		t.Errorf("expected volume_decline and conversion_decline, got %v", types)
	}
}

func TestSortBySeverityStable(t *testing.T) {
	alerts := []models.Alert{
		{ID: "w1", Severity: models.SeverityWarning},
		{ID: "c1", Severity: models.SeverityCritical},
		{ID: "i1", Severity: models.SeverityInfo},
		{ID: "c2", Severity: models.SeverityCritical},
	}

	SortBySeverity(alerts)

	wantOrder := []string{"c1", "c2", "w1", "i1"}
	for i, want := range wantOrder {
		if alerts[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, alerts[i].ID, want)
		}
	}
}

func TestEvaluateSortsAcrossEntities(t *testing.T) {
	sources := []models.SourceMetrics{
		{
			// warning only (conversion decline)
			SourceID: "a", SourceName: "A",
			VolumeCurrent: 10, ConversionRate: 35, SLAComplianceRate: 95,
			TrendDirection: models.TrendStable,
		},
		{
			// critical (volume decline)
			SourceID: "b", SourceName: "B",
			VolumeCurrent: 20, VolumePrevious: 40,
			ConversionRate: 80, SLAComplianceRate: 95,
			TrendDirection: models.TrendDown, TrendPercentage: -50,
		},
	}

	alerts := Evaluate(sources)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].SourceID != "b" || alerts[0].Severity != models.SeverityCritical {
		t.Errorf("critical alert should sort first, got %+v", alerts[0])
	}
}
