package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/pkg/supabase"
)

type alertRepository struct {
	client *supabase.Client
}

// NewAlertRepository creates an alert acknowledgment repository
func NewAlertRepository(client *supabase.Client) AlertRepository {
	return &alertRepository{client: client}
}

// Acknowledge upserts the acknowledgment row for (source, alert type).
// Re-acknowledging the same computed alert overwrites the previous ack,
// which is the behavior the dashboard wants.
func (r *alertRepository) Acknowledge(ctx context.Context, ack *models.AlertAck) (*models.AlertAck, error) {
	data := map[string]interface{}{
		"source_id":       ack.SourceID,
		"alert_type":      ack.AlertType,
		"status":          ack.Status,
		"acknowledged_by": ack.AcknowledgedBy,
		"acknowledged_at": ack.AcknowledgedAt,
	}

	body, err := r.client.Upsert(ctx, "alerts", data, "source_id,alert_type")
	if err != nil {
		return nil, err
	}

	var acks []models.AlertAck
	if err := json.Unmarshal(body, &acks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alert ack: %w", err)
	}

	if len(acks) == 0 {
		return nil, fmt.Errorf("no alert ack returned")
	}

	return &acks[0], nil
}
