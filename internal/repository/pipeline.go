package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/pkg/supabase"
)

type pipelineRepository struct {
	client *supabase.Client
}

// NewPipelineRepository creates a pipeline repository backed by Supabase
func NewPipelineRepository(client *supabase.Client) PipelineRepository {
	return &pipelineRepository{client: client}
}

func (r *pipelineRepository) GetLatestSnapshot(ctx context.Context) (*models.PipelineSnapshot, error) {
	query := map[string]interface{}{
		"select": "*",
		"order":  "captured_at.desc",
		"limit":  1,
	}

	body, err := r.client.Query(ctx, "pipeline_snapshots", query)
	if err != nil {
		return nil, err
	}

	var snapshots []models.PipelineSnapshot
	if err := json.Unmarshal(body, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pipeline snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		return nil, nil
	}

	return &snapshots[0], nil
}

func (r *pipelineRepository) InsertSnapshot(ctx context.Context, snap *models.PipelineSnapshot) (*models.PipelineSnapshot, error) {
	data := map[string]interface{}{
		"captured_at":            snap.CapturedAt,
		"marketing_leads":        snap.MarketingLeads,
		"intake_qualified":       snap.IntakeQualified,
		"appointments_scheduled": snap.AppointmentsScheduled,
		"appointments_completed": snap.AppointmentsCompleted,
		"revenue":                snap.Revenue,
	}

	body, err := r.client.Insert(ctx, "pipeline_snapshots", data)
	if err != nil {
		return nil, err
	}

	var snapshots []models.PipelineSnapshot
	if err := json.Unmarshal(body, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inserted snapshot: %w", err)
	}

	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no snapshot returned")
	}

	return &snapshots[0], nil
}

func (r *pipelineRepository) GetOpenBottlenecks(ctx context.Context) ([]models.Bottleneck, error) {
	query := map[string]interface{}{
		"status": "eq.open",
		"select": "*",
		"order":  "created_at.desc",
	}

	body, err := r.client.Query(ctx, "bottlenecks", query)
	if err != nil {
		return nil, err
	}

	var bottlenecks []models.Bottleneck
	if err := json.Unmarshal(body, &bottlenecks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bottlenecks: %w", err)
	}

	return bottlenecks, nil
}

func (r *pipelineRepository) ResolveBottleneck(ctx context.Context, id string, req *models.ResolveBottleneckRequest) (*models.Bottleneck, error) {
	data := map[string]interface{}{
		"status":      "resolved",
		"resolved_by": req.ResolvedBy,
		"resolution":  req.Resolution,
		"resolved_at": time.Now().UTC(),
	}

	body, err := r.client.UpdateByID(ctx, "bottlenecks", id, data)
	if err != nil {
		return nil, err
	}

	var bottlenecks []models.Bottleneck
	if err := json.Unmarshal(body, &bottlenecks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resolved bottleneck: %w", err)
	}

	if len(bottlenecks) == 0 {
		return nil, nil
	}

	return &bottlenecks[0], nil
}
