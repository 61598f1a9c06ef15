package service

import (
	"context"
	"testing"
	"time"

	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/pkg/supabase"
)

type mockQualityRepository struct {
	records  []models.ClinicianRecord
	failWith error
}

func (m *mockQualityRepository) GetRecordsBetween(ctx context.Context, start, end time.Time) ([]models.ClinicianRecord, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var result []models.ClinicianRecord
	for _, r := range m.records {
		if !r.VisitAt.Before(start) && r.VisitAt.Before(end) {
			result = append(result, r)
		}
	}
	return result, nil
}

func visitsFor(clinicianID, name string, daysAgo, count, planMet, onTime int) []models.ClinicianRecord {
	at := time.Now().UTC().AddDate(0, 0, -daysAgo)
	records := make([]models.ClinicianRecord, count)
	for i := range records {
		records[i] = models.ClinicianRecord{
			ClinicianID:      clinicianID,
			ClinicianName:    name,
			VisitAt:          at,
			PlanOfCareMet:    i < planMet,
			NoteClosedOnTime: i < onTime,
		}
	}
	return records
}

func TestQualityDashboardFallsBackOnFetchError(t *testing.T) {
	repo := &mockQualityRepository{failWith: &supabase.QueryError{Table: "clinician_records"}}
	svc := NewQualityService(repo)

	dash := svc.Dashboard(context.Background())
	if dash.DataSource != "demo" {
		t.Errorf("DataSource = %q, want demo", dash.DataSource)
	}
	if len(dash.Clinicians) == 0 {
		t.Error("demo payload must include clinicians")
	}
}

func TestQualityDashboardLiveComputation(t *testing.T) {
	repo := &mockQualityRepository{}
	repo.records = append(repo.records, visitsFor("clin-a", "Dr. A", 5, 40, 36, 38)...)
	repo.records = append(repo.records, visitsFor("clin-a", "Dr. A", 45, 42, 35, 40)...)
	repo.records = append(repo.records, visitsFor("clin-b", "Dr. B", 5, 30, 7, 25)...)

	svc := NewQualityService(repo)
	dash := svc.Dashboard(context.Background())

	if dash.DataSource != "live" {
		t.Fatalf("DataSource = %q, want live", dash.DataSource)
	}
	if len(dash.Clinicians) != 2 {
		t.Fatalf("expected 2 clinicians, got %d", len(dash.Clinicians))
	}

	// sorted by clinician ID
	a, b := dash.Clinicians[0], dash.Clinicians[1]
	if a.ClinicianID != "clin-a" || b.ClinicianID != "clin-b" {
		t.Fatalf("clinicians out of order: %s, %s", a.ClinicianID, b.ClinicianID)
	}

	if a.PlanOfCareRate != 90 {
		t.Errorf("clin-a plan-of-care rate = %v, want 90", a.PlanOfCareRate)
	}
	if a.HealthStatus != models.HealthHealthy {
		t.Errorf("clin-a health = %v, want healthy", a.HealthStatus)
	}

	// 7/30 plan-of-care completion is below the warning line
	if b.HealthStatus == models.HealthHealthy {
		t.Errorf("clin-b should not be healthy at %v%% plan-of-care", b.PlanOfCareRate)
	}

	if dash.Overview.CliniciansAtRisk != 1 {
		t.Errorf("clinicians at risk = %d, want 1", dash.Overview.CliniciansAtRisk)
	}
	if dash.Overview.TotalVisitsCurrent != 70 {
		t.Errorf("current visits = %d, want 70", dash.Overview.TotalVisitsCurrent)
	}
}

func TestQualityDashboardSharesAlertRules(t *testing.T) {
	repo := &mockQualityRepository{}
	// steep volume drop: 20 visits now vs 50 before
	repo.records = append(repo.records, visitsFor("clin-c", "Dr. C", 5, 20, 18, 19)...)
	repo.records = append(repo.records, visitsFor("clin-c", "Dr. C", 45, 50, 45, 48)...)

	svc := NewQualityService(repo)
	dash := svc.Dashboard(context.Background())

	found := false
	for _, a := range dash.Alerts {
		if a.AlertType == models.AlertVolumeDecline && a.SourceID == "clin-c" {
			found = true
			if a.Severity != models.SeverityCritical {
				t.Errorf("severity = %v, want critical for a 60%% drop", a.Severity)
			}
		}
	}
	if !found {
		t.Errorf("expected a volume_decline alert for clin-c, got %+v", dash.Alerts)
	}
}
