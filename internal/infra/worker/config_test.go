package worker

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.RunOnce() {
		t.Error("DefaultConfig() should select run-once mode")
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.RunTimeout != 10*time.Minute {
		t.Errorf("RunTimeout = %v, want 10m", cfg.RunTimeout)
	}
	if cfg.HealthPort != 9091 {
		t.Errorf("HealthPort = %d, want 9091", cfg.HealthPort)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CRON_SCHEDULE", "30 5 * * *")
	t.Setenv("WORKER_TIMEZONE", "Asia/Tokyo")
	t.Setenv("RUN_TIMEOUT", "5m")
	t.Setenv("WORKER_HEALTH_PORT", "9191")

	cfg := LoadConfigFromEnv()

	if cfg.CronSchedule != "30 5 * * *" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.RunOnce() {
		t.Error("RunOnce() = true with a schedule set")
	}
	if cfg.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.RunTimeout != 5*time.Minute {
		t.Errorf("RunTimeout = %v", cfg.RunTimeout)
	}
	if cfg.HealthPort != 9191 {
		t.Errorf("HealthPort = %d", cfg.HealthPort)
	}
}

func TestLoadConfigFromEnvFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("CRON_SCHEDULE", "not a schedule")
	t.Setenv("WORKER_TIMEZONE", "Mars/Olympus")
	t.Setenv("WORKER_HEALTH_PORT", "80")

	cfg := LoadConfigFromEnv()

	if !cfg.RunOnce() {
		t.Error("invalid schedule should fall back to run-once mode")
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want default UTC", cfg.Timezone)
	}
	if cfg.HealthPort != 9091 {
		t.Errorf("HealthPort = %d, want default 9091", cfg.HealthPort)
	}
}
