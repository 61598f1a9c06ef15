package models

import "time"

// Stage names the steps of the growth funnel, in order
type Stage string

const (
	StageMarketingLeads        Stage = "marketing_leads"
	StageIntakeQualified       Stage = "intake_qualified"
	StageAppointmentsScheduled Stage = "appointments_scheduled"
	StageAppointmentsCompleted Stage = "appointments_completed"
	StageRevenue               Stage = "revenue"
)

// FunnelStages lists the funnel stages in pipeline order
var FunnelStages = []Stage{
	StageMarketingLeads,
	StageIntakeQualified,
	StageAppointmentsScheduled,
	StageAppointmentsCompleted,
	StageRevenue,
}

// PipelineSnapshot is a point-in-time rollup of the growth funnel
type PipelineSnapshot struct {
	ID                    string    `json:"id"`
	CapturedAt            time.Time `json:"captured_at"`
	MarketingLeads        int       `json:"marketing_leads"`
	IntakeQualified       int       `json:"intake_qualified"`
	AppointmentsScheduled int       `json:"appointments_scheduled"`
	AppointmentsCompleted int       `json:"appointments_completed"`
	Revenue               float64   `json:"revenue"`
	CreatedAt             time.Time `json:"created_at"`
}

// StageCount returns the count recorded for a funnel stage. The revenue
// stage reports completed appointments that billed, which the snapshot
// stores as the revenue-weighted completion count.
func (p *PipelineSnapshot) StageCount(s Stage) int {
	switch s {
	case StageMarketingLeads:
		return p.MarketingLeads
	case StageIntakeQualified:
		return p.IntakeQualified
	case StageAppointmentsScheduled:
		return p.AppointmentsScheduled
	case StageAppointmentsCompleted:
		return p.AppointmentsCompleted
	default:
		return 0
	}
}

// StageConversion is the computed hand-off rate between two adjacent stages
type StageConversion struct {
	From     Stage    `json:"from"`
	To       Stage    `json:"to"`
	FromVal  int      `json:"from_value"`
	ToVal    int      `json:"to_value"`
	Rate     float64  `json:"rate"`
	Severity Severity `json:"severity"`
}

// Bottleneck describes a funnel stage under strain
type Bottleneck struct {
	ID                   string     `json:"id"`
	Stage                Stage      `json:"stage"`
	Severity             Severity   `json:"severity"`
	DelayedAppointments  int        `json:"delayed_appointments"`
	LostAppointments     int        `json:"lost_appointments"`
	EstimatedRevenueLost float64    `json:"estimated_revenue_lost"`
	ContributingFactors  []string   `json:"contributing_factors"`
	RecommendedActions   []string   `json:"recommended_actions"`
	Status               string     `json:"status"` // "open", "resolved"
	ResolvedBy           string     `json:"resolved_by,omitempty"`
	Resolution           string     `json:"resolution,omitempty"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// ResolveBottleneckRequest is the request body for resolving a bottleneck
type ResolveBottleneckRequest struct {
	ResolvedBy string `json:"resolved_by" binding:"required"`
	Resolution string `json:"resolution"`
}

// RevOpsDashboard is the assembled revenue-operations payload
type RevOpsDashboard struct {
	Snapshot          *PipelineSnapshot `json:"snapshot"`
	StageConversions  []StageConversion `json:"stage_conversions"`
	PrimaryBottleneck *StageConversion  `json:"primary_bottleneck,omitempty"`
	Bottlenecks       []Bottleneck      `json:"bottlenecks"`
	LeadToRevenueRate float64           `json:"lead_to_revenue_rate"`
	ComputedAt        time.Time         `json:"computed_at"`
	DataSource        string            `json:"data_source"`
}
