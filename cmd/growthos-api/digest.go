package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aimhealth/growthos/backend/internal/config"
	"github.com/aimhealth/growthos/backend/internal/digest"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Run one digest cycle and exit",
	Long:  `Assemble the dashboards, record a pipeline snapshot, and deliver critical alerts once, outside the schedule.`,
	RunE:  runDigest,
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	initLogger(cfg)

	svcs := buildServices(cfg)
	job := digest.NewJob(cfg.Digest.Schedule, svcs.referral, svcs.revOps, svcs.quality, buildNotifier(cfg))
	job.Run()

	return nil
}
