package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DEFAULT_SAMPLING_METHOD", "")
	t.Setenv("DEFAULT_CONFIDENCE_LEVEL", "")
	t.Setenv("DEFAULT_DESIGN_EFFECT", "")
	t.Setenv("ARCHIVE_LIST_LIMIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Database.Enabled {
		t.Error("database should be disabled without DATABASE_URL")
	}
	if cfg.Analysis.DefaultMethod != "simple_random" {
		t.Errorf("default method %q, want simple_random", cfg.Analysis.DefaultMethod)
	}
	if cfg.Analysis.DefaultConfidenceLevel != "95%" {
		t.Errorf("default confidence level %q, want 95%%", cfg.Analysis.DefaultConfidenceLevel)
	}
	if cfg.Analysis.DefaultDesignEffect != 1.0 {
		t.Errorf("default design effect %v, want 1.0", cfg.Analysis.DefaultDesignEffect)
	}
	if cfg.Archive.ListLimit != 50 {
		t.Errorf("default list limit %d, want 50", cfg.Archive.ListLimit)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/surveys")
	t.Setenv("DEFAULT_SAMPLING_METHOD", "stratified")
	t.Setenv("DEFAULT_CONFIDENCE_LEVEL", "99%")
	t.Setenv("DEFAULT_DESIGN_EFFECT", "1.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.Database.Enabled {
		t.Error("database should be enabled when DATABASE_URL is set")
	}
	if cfg.Analysis.DefaultMethod != "stratified" {
		t.Errorf("method %q, want stratified", cfg.Analysis.DefaultMethod)
	}
	if cfg.Analysis.DefaultDesignEffect != 1.5 {
		t.Errorf("design effect %v, want 1.5", cfg.Analysis.DefaultDesignEffect)
	}
}

func TestLoad_RejectsNonPositiveDesignEffect(t *testing.T) {
	t.Setenv("DEFAULT_DESIGN_EFFECT", "-2")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for negative design effect")
	}
}

func TestGetEnvFloatOrDefault_IgnoresGarbage(t *testing.T) {
	t.Setenv("DEFAULT_DESIGN_EFFECT", "not-a-number")

	if got := getEnvFloatOrDefault("DEFAULT_DESIGN_EFFECT", 1.0); got != 1.0 {
		t.Errorf("got %v, want default 1.0 for unparseable value", got)
	}
}
