package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("env = %q, want development", cfg.Server.Env)
	}
	if cfg.Digest.Enabled {
		t.Error("digest should be disabled by default")
	}
	if cfg.Digest.Schedule != "0 6 * * *" {
		t.Errorf("digest schedule = %q, want 0 6 * * *", cfg.Digest.Schedule)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log config = %q/%q, want info/json", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoadRequiresSupabase(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("expected an error without Supabase settings")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://postgres:pw@localhost:5432/app")
	t.Setenv("ADMIN_SEED_KEY", "topsecret")
	t.Setenv("GROWTHOS_DIGEST_ENABLED", "true")
	t.Setenv("GROWTHOS_DIGEST_SCHEDULE", "30 7 * * *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Database.URL == "" {
		t.Error("database URL should bind from DATABASE_URL")
	}
	if cfg.Admin.SeedKey != "topsecret" {
		t.Errorf("seed key = %q, want topsecret", cfg.Admin.SeedKey)
	}
	if !cfg.Digest.Enabled {
		t.Error("digest should be enabled via GROWTHOS_DIGEST_ENABLED")
	}
	if cfg.Digest.Schedule != "30 7 * * *" {
		t.Errorf("digest schedule = %q, want 30 7 * * *", cfg.Digest.Schedule)
	}
}
