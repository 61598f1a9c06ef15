// Package seed applies named SQL seed scripts to the Postgres database behind
// the Supabase project. Seeds are idempotent by name: each applied script is
// recorded in an applied_seeds table and re-submissions are skipped. Raw SQL
// cannot go through the PostgREST data API, so this package connects directly
// with database/sql.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Status values returned from Apply
const (
	StatusApplied = "applied"
	StatusSkipped = "skipped"
)

// Result describes the outcome of one seed submission
type Result struct {
	SeedName  string    `json:"seed_name"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at,omitempty"`
}

// Applier executes seed scripts against Postgres
type Applier struct {
	db *sql.DB
}

// NewApplier opens a connection pool to the given Postgres URL
func NewApplier(databaseURL string) (*Applier, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Applier{db: db}, nil
}

// Close releases the connection pool
func (a *Applier) Close() error {
	return a.db.Close()
}

// Ping verifies the database is reachable
func (a *Applier) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Apply runs the seed script inside a transaction. If a seed with the same
// name was applied before, nothing runs and the result status is "skipped".
// The script and its ledger row commit together; any failure rolls both back,
// so a failed seed can be resubmitted after the script is fixed.
func (a *Applier) Apply(ctx context.Context, seedName, sqlContent string) (*Result, error) {
	if err := a.ensureLedger(ctx); err != nil {
		return nil, err
	}

	var appliedAt time.Time
	err := a.db.QueryRowContext(ctx,
		`SELECT applied_at FROM applied_seeds WHERE seed_name = $1`,
		seedName,
	).Scan(&appliedAt)
	switch {
	case err == nil:
		return &Result{SeedName: seedName, Status: StatusSkipped, AppliedAt: appliedAt}, nil
	case err != sql.ErrNoRows:
		return nil, fmt.Errorf("failed to check applied seeds: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sqlContent); err != nil {
		return nil, fmt.Errorf("seed %q failed: %w", seedName, err)
	}

	appliedAt = time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO applied_seeds (seed_name, applied_at) VALUES ($1, $2)`,
		seedName, appliedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to record seed %q: %w", seedName, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed %q: %w", seedName, err)
	}

	return &Result{SeedName: seedName, Status: StatusApplied, AppliedAt: appliedAt}, nil
}

func (a *Applier) ensureLedger(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS applied_seeds (
			seed_name  TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure applied_seeds table: %w", err)
	}
	return nil
}
