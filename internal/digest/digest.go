// Package digest runs the scheduled morning roll-up: it assembles the three
// dashboards, records a daily pipeline snapshot for trend history, and pushes
// critical alerts to the configured notifier.
package digest

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aimhealth/growthos/backend/internal/logger"
	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/internal/notify"
	"github.com/aimhealth/growthos/backend/internal/service"
)

// runTimeout bounds one digest run
const runTimeout = 2 * time.Minute

// Job is the scheduled digest runner
type Job struct {
	schedule string
	cron     *cron.Cron

	referralService service.ReferralService
	revOpsService   service.RevOpsService
	qualityService  service.QualityService
	notifier        notify.Notifier
}

// NewJob creates a digest job on the given cron schedule (standard 5-field
// cron expression, e.g. "0 6 * * *" for 06:00 daily)
func NewJob(
	schedule string,
	referralService service.ReferralService,
	revOpsService service.RevOpsService,
	qualityService service.QualityService,
	notifier notify.Notifier,
) *Job {
	return &Job{
		schedule:        schedule,
		cron:            cron.New(),
		referralService: referralService,
		revOpsService:   revOpsService,
		qualityService:  qualityService,
		notifier:        notifier,
	}
}

// Start registers the schedule and begins running. Returns an error only for
// an invalid cron expression.
func (j *Job) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}
	j.cron.Start()
	logger.Info("digest job started", logger.String("schedule", j.schedule))
	return nil
}

// Stop halts the scheduler; a run already in progress finishes
func (j *Job) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	logger.Info("digest job stopped")
}

// Run executes one digest cycle immediately; exported for manual triggering
func (j *Job) Run() {
	j.run()
}

func (j *Job) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	log := logger.With(logger.String("job", "digest"))
	started := time.Now()

	referral := j.referralService.Dashboard(ctx)
	revops := j.revOpsService.Dashboard(ctx)
	quality := j.qualityService.Dashboard(ctx)

	// capture today's funnel state so the snapshot history grows one row per
	// day; demo payloads are synthetic and must not be written back
	if revops.DataSource == "live" && revops.Snapshot != nil {
		snap := *revops.Snapshot
		snap.ID = ""
		snap.CapturedAt = time.Now().UTC()
		if _, err := j.revOpsService.RecordSnapshot(ctx, &snap); err != nil {
			log.Error("failed to record daily pipeline snapshot", logger.Err(err))
		}
	}

	critical := collectCritical(referral.Alerts, quality.Alerts)
	if err := j.notifier.SendCriticalAlerts(critical); err != nil {
		log.Error("failed to deliver alert digest", logger.Err(err))
	}

	log.Info("digest run completed",
		logger.String("referral_source", referral.DataSource),
		logger.String("revops_source", revops.DataSource),
		logger.String("quality_source", quality.DataSource),
		logger.Int("critical_alerts", len(critical)),
		logger.Duration("elapsed", time.Since(started)),
	)
}

func collectCritical(groups ...[]models.Alert) []models.Alert {
	var critical []models.Alert
	for _, alerts := range groups {
		for _, a := range alerts {
			if a.Severity == models.SeverityCritical {
				critical = append(critical, a)
			}
		}
	}
	return critical
}
