package models

import "time"

// TrendDirection classifies period-over-period movement of a volume metric
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// HealthStatus summarizes how an entity is performing overall
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

// Severity ranks alerts for display ordering
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// AlertType identifies which threshold rule produced an alert
type AlertType string

const (
	AlertVolumeDecline     AlertType = "volume_decline"
	AlertConversionDecline AlertType = "conversion_decline"
	AlertSLABreach         AlertType = "sla_breach"
	AlertRelationshipRisk  AlertType = "relationship_risk"
)

// ReferralSource represents a referring provider or employer account
type ReferralSource struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"` // "strategic", "standard"
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Referral represents a single inbound patient referral
type Referral struct {
	ID         string    `json:"id"`
	SourceID   string    `json:"source_id"`
	ClinicID   string    `json:"clinic_id,omitempty"`
	ReferredAt time.Time `json:"referred_at"`
	Converted  bool      `json:"converted"` // became a scheduled patient
	SLAMet     bool      `json:"sla_met"`   // first contact within the SLA window
	CreatedAt  time.Time `json:"created_at"`
}

// SourceMetrics holds the derived per-source numbers for one dashboard load.
// Recomputed on every load, never persisted.
type SourceMetrics struct {
	SourceID          string         `json:"source_id"`
	SourceName        string         `json:"source_name"`
	Relationship      string         `json:"relationship,omitempty"`
	VolumeCurrent     int            `json:"volume_current"`
	VolumePrevious    int            `json:"volume_previous"`
	ConversionRate    float64        `json:"conversion_rate"`
	SLAComplianceRate float64        `json:"sla_compliance_rate"`
	TrendDirection    TrendDirection `json:"trend_direction"`
	TrendPercentage   float64        `json:"trend_percentage"`
	HealthStatus      HealthStatus   `json:"health_status"`
}

// Alert is a computed warning about one entity's metrics. Alerts are rebuilt
// on every computation cycle; only acknowledgment state persists (see AlertAck).
type Alert struct {
	ID               string    `json:"id"`
	SourceID         string    `json:"source_id"`
	SourceName       string    `json:"source_name"`
	AlertType        AlertType `json:"alert_type"`
	Severity         Severity  `json:"severity"`
	CurrentValue     float64   `json:"current_value"`
	PreviousValue    float64   `json:"previous_value"`
	ChangePercentage float64   `json:"change_percentage"`
	Message          string    `json:"message"`
	Recommendation   string    `json:"recommendation"`
}

// AlertAck is the persisted acknowledgment of an alert, keyed by the entity
// and rule that produced it.
type AlertAck struct {
	ID             string    `json:"id"`
	SourceID       string    `json:"source_id"`
	AlertType      AlertType `json:"alert_type"`
	Status         string    `json:"status"` // "acknowledged"
	AcknowledgedBy string    `json:"acknowledged_by"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
}

// AcknowledgeAlertRequest is the request body for acknowledging an alert
type AcknowledgeAlertRequest struct {
	SourceID       string    `json:"source_id" binding:"required"`
	AlertType      AlertType `json:"alert_type" binding:"required"`
	AcknowledgedBy string    `json:"acknowledged_by" binding:"required"`
}

// ReferralOverview holds the headline counts for the referral dashboard
type ReferralOverview struct {
	TotalCurrent      int     `json:"total_current"`
	TotalPrevious     int     `json:"total_previous"`
	AvgConversionRate float64 `json:"avg_conversion_rate"`
	AvgSLACompliance  float64 `json:"avg_sla_compliance"`
	CriticalAlerts    int     `json:"critical_alerts"`
	WarningAlerts     int     `json:"warning_alerts"`
}

// ReferralDashboard is the assembled referral-intelligence payload
type ReferralDashboard struct {
	Overview   ReferralOverview `json:"overview"`
	Sources    []SourceMetrics  `json:"sources"`
	Alerts     []Alert          `json:"alerts"`
	ComputedAt time.Time        `json:"computed_at"`
	DataSource string           `json:"data_source"` // "live" or "demo"
}
