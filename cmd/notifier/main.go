// Command notifier polls the configured feeds and posts one chat message per
// new entry. By default it performs a single run and exits; with CRON_SCHEDULE
// set it stays up and runs on that schedule.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"blog-notify/internal/config"
	"blog-notify/internal/infra/enricher"
	"blog-notify/internal/infra/notifier"
	"blog-notify/internal/infra/scraper"
	workerPkg "blog-notify/internal/infra/worker"
	"blog-notify/internal/observability/logging"
	"blog-notify/internal/usecase/digest"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration is not usable", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.String("provider", cfg.Provider),
		slog.Duration("max_post_age", cfg.MaxPostAge),
		slog.Int("feeds", len(cfg.Feeds)))

	svc := digest.NewService(cfg,
		scraper.NewRSSFetcher(createHTTPClient()),
		buildEnricher(ctx, logger, cfg),
		buildNotifier(logger, cfg))

	workerConfig := workerPkg.LoadConfigFromEnv()
	if workerConfig.RunOnce() {
		if err := runJob(ctx, logger, svc, workerConfig.RunTimeout); err != nil {
			os.Exit(1)
		}
		return
	}

	startCronWorker(ctx, logger, svc, workerConfig)
}

// buildEnricher creates the enrichment provider selected by the configuration.
// Providers that need an API key refuse to start without one.
func buildEnricher(ctx context.Context, logger *slog.Logger, cfg *config.Config) digest.Enricher {
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := enricher.NewGemini(ctx, cfg.Project, cfg.Region)
		if err != nil {
			logger.Error("failed to initialize gemini enricher", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("using gemini for enrichment",
			slog.String("project", cfg.Project),
			slog.String("region", cfg.Region))
		return g
	case config.ProviderClaude:
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when ENRICHER_PROVIDER=claude")
			os.Exit(1)
		}
		logger.Info("using claude for enrichment")
		return enricher.NewClaude(apiKey)
	case config.ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY is required when ENRICHER_PROVIDER=openai")
			os.Exit(1)
		}
		logger.Info("using openai for enrichment")
		return enricher.NewOpenAI(apiKey)
	case config.ProviderNone:
		logger.Info("enrichment disabled, messages carry title and link only")
		return enricher.NewNoOp()
	default:
		logger.Error("invalid ENRICHER_PROVIDER",
			slog.String("provider", cfg.Provider),
			slog.String("expected", "gemini, claude, openai or none"))
		os.Exit(1)
		return nil
	}
}

// buildNotifier creates the chat notifier, or a dry-run logger when
// NOTIFIER_DRY_RUN is set.
func buildNotifier(logger *slog.Logger, cfg *config.Config) digest.Notifier {
	if os.Getenv("NOTIFIER_DRY_RUN") == "true" {
		logger.Info("dry run mode, messages are logged instead of posted")
		return notifier.NewDryRunNotifier()
	}
	return notifier.NewChatNotifier(notifier.ChatConfig{
		WebhookURL: cfg.WebhookURL,
		Timeout:    30 * time.Second,
	})
}

// createHTTPClient creates the HTTP client used for feed fetching.
// TLS 1.2+ is enforced.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// runJob executes a single notification run with a timeout.
func runJob(ctx context.Context, logger *slog.Logger, svc *digest.Service, timeout time.Duration) error {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stats, err := svc.Run(runCtx)
	if err != nil {
		logger.Error("notification run failed", slog.Any("error", err))
		return err
	}

	logger.Info("notification run finished",
		slog.Int("feeds", stats.Feeds),
		slog.Int("feed_errors", stats.FeedErrors),
		slog.Int("entries", stats.Entries),
		slog.Int("stale", stats.Stale),
		slog.Int("undated", stats.Undated),
		slog.Int("duplicates", stats.Duplicates),
		slog.Int("notified", stats.Notified),
		slog.Int("notify_errors", stats.NotifyErrors),
		slog.Duration("duration", stats.Duration))
	return nil
}

// startCronWorker runs the job on the configured schedule until the
// context is canceled. Metrics and health servers stay up for the
// lifetime of the process.
func startCronWorker(ctx context.Context, logger *slog.Logger, svc *digest.Service, cfg workerPkg.Config) {
	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		_ = runJob(ctx, logger, svc, cfg.RunTimeout)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping scheduler")
	<-c.Stop().Done()
}
