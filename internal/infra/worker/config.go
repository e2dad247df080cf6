// Package worker holds the long-running mode of the notifier: scheduling,
// health probes, and their configuration.
package worker

import (
	"log/slog"
	"time"

	pkgconfig "blog-notify/pkg/config"
)

// Config holds the configuration for the scheduled worker mode.
// An empty CronSchedule means the process performs a single run and exits.
type Config struct {
	// CronSchedule is the cron expression for job scheduling.
	// Loaded from CRON_SCHEDULE; empty selects run-once mode.
	CronSchedule string

	// Timezone is the IANA timezone name used for cron scheduling.
	// Loaded from WORKER_TIMEZONE. Default: "UTC".
	Timezone string

	// RunTimeout is the maximum duration for a single notification run.
	// Loaded from RUN_TIMEOUT. Default: 10 minutes.
	RunTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Loaded from WORKER_HEALTH_PORT. Default: 9091.
	HealthPort int
}

// DefaultConfig returns a Config with default values: run-once mode,
// UTC scheduling and a 10 minute run timeout.
func DefaultConfig() Config {
	return Config{
		CronSchedule: "",
		Timezone:     "UTC",
		RunTimeout:   10 * time.Minute,
		HealthPort:   9091,
	}
}

// LoadConfigFromEnv loads the worker configuration from the environment.
// Invalid values fall back to the defaults with a warning; scheduling must
// keep working even when operators misconfigure a single knob.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if schedule := pkgconfig.GetEnvString("CRON_SCHEDULE", ""); schedule != "" {
		if err := pkgconfig.ValidateCronSchedule(schedule); err != nil {
			slog.Warn("invalid CRON_SCHEDULE, staying in run-once mode",
				slog.String("value", schedule),
				slog.String("error", err.Error()))
		} else {
			cfg.CronSchedule = schedule
		}
	}

	tz := pkgconfig.GetEnvString("WORKER_TIMEZONE", cfg.Timezone)
	if err := pkgconfig.ValidateTimezone(tz); err != nil {
		slog.Warn("invalid WORKER_TIMEZONE, using default",
			slog.String("value", tz),
			slog.String("default", cfg.Timezone),
			slog.String("error", err.Error()))
	} else {
		cfg.Timezone = tz
	}

	timeout := pkgconfig.GetEnvDuration("RUN_TIMEOUT", cfg.RunTimeout)
	if err := pkgconfig.ValidatePositiveDuration(timeout); err != nil {
		slog.Warn("invalid RUN_TIMEOUT, using default",
			slog.Duration("value", timeout),
			slog.Duration("default", cfg.RunTimeout),
			slog.String("error", err.Error()))
	} else {
		cfg.RunTimeout = timeout
	}

	port := pkgconfig.GetEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort)
	if err := pkgconfig.ValidateIntRange(port, 1024, 65535); err != nil {
		slog.Warn("invalid WORKER_HEALTH_PORT, using default",
			slog.Int("value", port),
			slog.Int("default", cfg.HealthPort),
			slog.String("error", err.Error()))
	} else {
		cfg.HealthPort = port
	}

	return cfg
}

// RunOnce reports whether the process should perform a single run and exit.
func (c Config) RunOnce() bool {
	return c.CronSchedule == ""
}
