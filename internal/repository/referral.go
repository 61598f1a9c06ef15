package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aimhealth/growthos/backend/internal/models"
	"github.com/aimhealth/growthos/backend/pkg/supabase"
)

type referralRepository struct {
	client *supabase.Client
}

// NewReferralRepository creates a referral repository backed by Supabase
func NewReferralRepository(client *supabase.Client) ReferralRepository {
	return &referralRepository{client: client}
}

func (r *referralRepository) GetSources(ctx context.Context) ([]models.ReferralSource, error) {
	query := map[string]interface{}{
		"select": "*",
		"order":  "name.asc",
	}

	body, err := r.client.Query(ctx, "referral_sources", query)
	if err != nil {
		return nil, err
	}

	var sources []models.ReferralSource
	if err := json.Unmarshal(body, &sources); err != nil {
		return nil, fmt.Errorf("failed to unmarshal referral sources: %w", err)
	}

	return sources, nil
}

func (r *referralRepository) GetSourceByID(ctx context.Context, id string) (*models.ReferralSource, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query(ctx, "referral_sources", query)
	if err != nil {
		return nil, err
	}

	var sources []models.ReferralSource
	if err := json.Unmarshal(body, &sources); err != nil {
		return nil, fmt.Errorf("failed to unmarshal referral source: %w", err)
	}

	if len(sources) == 0 {
		return nil, nil
	}

	return &sources[0], nil
}

func (r *referralRepository) GetReferralsBetween(ctx context.Context, start, end time.Time) ([]models.Referral, error) {
	query := map[string]interface{}{
		"and":    fmt.Sprintf("(referred_at.gte.%s,referred_at.lt.%s)", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		"select": "*",
		"order":  "referred_at.desc",
	}

	body, err := r.client.Query(ctx, "referrals", query)
	if err != nil {
		return nil, err
	}

	var referrals []models.Referral
	if err := json.Unmarshal(body, &referrals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal referrals: %w", err)
	}

	return referrals, nil
}
