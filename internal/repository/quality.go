package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/pkg/supabase"
)

type qualityRepository struct {
	client *supabase.Client
}

// NewQualityRepository creates a clinician record repository backed by Supabase
func NewQualityRepository(client *supabase.Client) QualityRepository {
	return &qualityRepository{client: client}
}

func (r *qualityRepository) GetRecordsBetween(ctx context.Context, start, end time.Time) ([]models.ClinicianRecord, error) {
	query := map[string]interface{}{
		"and":    fmt.Sprintf("(visit_at.gte.%s,visit_at.lt.%s)", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		"select": "*",
		"order":  "visit_at.desc",
	}

	body, err := r.client.Query(ctx, "clinician_records", query)
	if err != nil {
		return nil, err
	}

	var records []models.ClinicianRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal clinician records: %w", err)
	}

	return records, nil
}
