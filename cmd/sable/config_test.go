package main

import (
	"testing"

	"github.com/spf13/pflag"
)

func testFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("color", "auto", "")
	flags.String("ui", "auto", "")
	flags.Int("jobs", 0, "")
	flags.Int("max-diagnostics", 100, "")
	flags.Bool("timings", false, "")
	flags.Bool("no-cache", false, "")
	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(testFlags(t))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Color != "auto" || cfg.UI != "auto" {
		t.Fatalf("defaults = %q/%q, want auto/auto", cfg.Color, cfg.UI)
	}
	if cfg.MaxDiagnostics != 100 {
		t.Fatalf("max diagnostics default = %d, want 100", cfg.MaxDiagnostics)
	}
	if cfg.Timings || cfg.NoCache {
		t.Fatalf("boolean defaults flipped: %+v", cfg)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SABLE_MAX_DIAGNOSTICS", "7")
	t.Setenv("SABLE_TIMINGS", "true")

	cfg, err := loadConfig(testFlags(t))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.MaxDiagnostics != 7 {
		t.Fatalf("env override lost: max diagnostics = %d, want 7", cfg.MaxDiagnostics)
	}
	if !cfg.Timings {
		t.Fatalf("env override lost: timings off")
	}
}

func TestLoadConfigFlagBeatsEnv(t *testing.T) {
	t.Setenv("SABLE_JOBS", "2")

	flags := testFlags(t)
	if err := flags.Set("jobs", "5"); err != nil {
		t.Fatalf("flag set failed: %v", err)
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Jobs != 5 {
		t.Fatalf("flag did not win over env: jobs = %d, want 5", cfg.Jobs)
	}
}

func TestReadUIModeRejectsGarbage(t *testing.T) {
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected an error for an invalid ui mode")
	}
	mode, err := readUIMode("ON")
	if err != nil || mode != uiModeOn {
		t.Fatalf("readUIMode(ON) = %v, %v", mode, err)
	}
}
