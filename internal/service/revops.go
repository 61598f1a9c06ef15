package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aimhealth/growthos/backend/internal/logger"
	"github.com/aimhealth/growthos/backend/internal/metrics"
	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

type revOpsService struct {
	pipelineRepo repository.PipelineRepository
}

// NewRevOpsService creates the revenue-operations service
func NewRevOpsService(pipelineRepo repository.PipelineRepository) RevOpsService {
	return &revOpsService{pipelineRepo: pipelineRepo}
}

// Dashboard assembles the revenue-operations payload from the latest pipeline
// snapshot and the open bottlenecks. Both fetches run concurrently; any
// failure, or a project with no snapshots yet, yields the demo payload.
func (s *revOpsService) Dashboard(ctx context.Context) *models.RevOpsDashboard {
	var (
		snapshot    *models.PipelineSnapshot
		bottlenecks []models.Bottleneck
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot, err = s.pipelineRepo.GetLatestSnapshot(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bottlenecks, err = s.pipelineRepo.GetOpenBottlenecks(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Ctx(ctx).Warn("revops dashboard fetch failed, serving demo data", logger.Err(err))
		return demoRevOpsDashboard()
	}

	if snapshot == nil {
		logger.Ctx(ctx).Info("no pipeline snapshots found, serving demo data")
		return demoRevOpsDashboard()
	}

	conversions := metrics.StageConversions(*snapshot)

	return &models.RevOpsDashboard{
		Snapshot:          snapshot,
		StageConversions:  conversions,
		PrimaryBottleneck: metrics.PrimaryBottleneck(conversions),
		Bottlenecks:       bottlenecks,
		LeadToRevenueRate: metrics.LeadToRevenueRate(*snapshot),
		ComputedAt:        time.Now().UTC(),
		DataSource:        "live",
	}
}

// ResolveBottleneck marks a bottleneck as handled. Pass-through write; errors
// propagate to the caller.
func (s *revOpsService) ResolveBottleneck(ctx context.Context, id string, req *models.ResolveBottleneckRequest) (*models.Bottleneck, error) {
	bottleneck, err := s.pipelineRepo.ResolveBottleneck(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bottleneck: %w", err)
	}
	return bottleneck, nil
}

// RecordSnapshot persists a funnel snapshot; used by the scheduled digest job
func (s *revOpsService) RecordSnapshot(ctx context.Context, snap *models.PipelineSnapshot) (*models.PipelineSnapshot, error) {
	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = time.Now().UTC()
	}

	saved, err := s.pipelineRepo.InsertSnapshot(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("failed to record pipeline snapshot: %w", err)
	}

	return saved, nil
}
