package models

import "time"

// ClinicianRecord is one completed visit with its quality flags
type ClinicianRecord struct {
	ID               string    `json:"id"`
	ClinicianID      string    `json:"clinician_id"`
	ClinicianName    string    `json:"clinician_name"`
	ClinicID         string    `json:"clinic_id,omitempty"`
	VisitAt          time.Time `json:"visit_at"`
	PlanOfCareMet    bool      `json:"plan_of_care_met"`    // visit advanced the plan of care
	NoteClosedOnTime bool      `json:"note_closed_on_time"` // documentation within the SLA window
	CreatedAt        time.Time `json:"created_at"`
}

// ClinicianMetrics holds the derived per-clinician numbers for one load
type ClinicianMetrics struct {
	ClinicianID       string         `json:"clinician_id"`
	ClinicianName     string         `json:"clinician_name"`
	VolumeCurrent     int            `json:"volume_current"`
	VolumePrevious    int            `json:"volume_previous"`
	PlanOfCareRate    float64        `json:"plan_of_care_rate"`
	DocumentationRate float64        `json:"documentation_rate"`
	TrendDirection    TrendDirection `json:"trend_direction"`
	TrendPercentage   float64        `json:"trend_percentage"`
	HealthStatus      HealthStatus   `json:"health_status"`
}

// QualityOverview holds the headline counts for the clinical quality dashboard
type QualityOverview struct {
	TotalVisitsCurrent   int     `json:"total_visits_current"`
	TotalVisitsPrevious  int     `json:"total_visits_previous"`
	AvgPlanOfCareRate    float64 `json:"avg_plan_of_care_rate"`
	AvgDocumentationRate float64 `json:"avg_documentation_rate"`
	CliniciansAtRisk     int     `json:"clinicians_at_risk"`
}

// QualityDashboard is the assembled clinical-quality payload
type QualityDashboard struct {
	Overview   QualityOverview    `json:"overview"`
	Clinicians []ClinicianMetrics `json:"clinicians"`
	Alerts     []Alert            `json:"alerts"`
	ComputedAt time.Time          `json:"computed_at"`
	DataSource string             `json:"data_source"`
}
