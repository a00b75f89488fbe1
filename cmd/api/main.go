package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github-asana-bridge/config"
	_ "github-asana-bridge/docs" // Swagger docs
	"github-asana-bridge/internal/backlink"
	"github-asana-bridge/internal/httpserver"
	"github-asana-bridge/internal/model"
	"github-asana-bridge/internal/notify"
	"github-asana-bridge/internal/tasklink"
	"github-asana-bridge/internal/webhook"
	"github-asana-bridge/pkg/asana"
	"github-asana-bridge/pkg/github"
	"github-asana-bridge/pkg/log"
	"github-asana-bridge/pkg/otel"
)

// @title       GitHub Asana Bridge API
// @description Links GitHub issues, pull requests and comments to the Asana tasks they reference.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting GitHub Asana bridge...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Tracing (optional)
	telemetry, err := otel.Setup(ctx, otel.Config{
		Endpoint:       cfg.OTel.Endpoint,
		Headers:        cfg.OTel.Headers,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.OTel.ServiceVersion,
	})
	if err != nil {
		logger.Warnf(ctx, "Tracing disabled: %v", err)
	} else if telemetry != nil {
		logger.Infof(ctx, "Tracing exported to %s", cfg.OTel.Endpoint)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(shutdownCtx); err != nil {
				logger.Warnf(shutdownCtx, "Tracing shutdown: %v", err)
			}
		}()
	}

	// 4. Remote clients
	asanaClient := asana.NewClient(cfg.Asana.BaseURL, cfg.Asana.AccessToken,
		asana.WithRateLimit(cfg.Asana.RateLimitPerSec))

	// The GitHub client is only needed for acknowledgement reactions.
	var source backlink.SourcePlatform
	if cfg.GitHub.Token != "" && cfg.GitHub.AckReaction != "" {
		githubClient, ghErr := github.NewClient(cfg.GitHub.BaseURL, cfg.GitHub.Token, cfg.GitHub.Login)
		if ghErr != nil {
			logger.Errorf(ctx, "Invalid GitHub configuration: %v", ghErr)
			os.Exit(1)
		}
		source = githubClient
		logger.Infof(ctx, "Comments are acknowledged with %q", cfg.GitHub.AckReaction)
	}

	// 5. Backlink usecase
	backlinkUC := backlink.New(
		tasklink.MustGrammar(tasklink.DefaultHost),
		notify.New(),
		asanaClient,
		source,
		backlink.Config{
			Project:        cfg.Asana.Project,
			PROpenSection:  cfg.Asana.PROpenSection,
			MergedSection:  cfg.Asana.MergedSection,
			MoveOnActions:  moveOnActions(cfg.Asana.MoveOnActions),
			MaxConcurrency: cfg.Webhook.MaxConcurrency,
			AckReaction:    cfg.GitHub.AckReaction,
		},
		logger,
	)
	switch {
	case cfg.Asana.Project == "":
		logger.Warn(ctx, "asana.project is empty: tasks are commented but never moved")
	case cfg.Asana.PROpenSection == "" && cfg.Asana.MergedSection == "":
		logger.Infof(ctx, "No sections configured: tasks are added to project %s without a section", cfg.Asana.Project)
	}

	// 6. Webhook delivery
	webhookHandler := webhook.NewHandler(backlinkUC, webhook.Config{
		Secret:    cfg.Webhook.Secret,
		DedupSize: cfg.Webhook.DedupSize,
		DedupTTL:  cfg.Webhook.DedupTTL,

		ProcessTimeout: cfg.Webhook.ProcessTimeout,
	}, logger)
	if cfg.Webhook.Secret == "" {
		logger.Warn(ctx, "webhook.secret is empty: deliveries are not authenticated")
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		ServiceName:    cfg.OTel.ServiceName,
		Version:        cfg.OTel.ServiceVersion,
		WebhookPath:    cfg.Webhook.Path,
		WebhookHandler: webhookHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// moveOnActions converts configured action names; nil keeps the default set.
func moveOnActions(names []string) []model.Action {
	if len(names) == 0 {
		return nil
	}
	actions := make([]model.Action, 0, len(names))
	for _, n := range names {
		actions = append(actions, model.Action(n))
	}
	return actions
}
