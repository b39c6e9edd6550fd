package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	appappeal "github.com/modshield/modgate/pkg/app/appeal"
	appcorrelation "github.com/modshield/modgate/pkg/app/correlation"
	"github.com/modshield/modgate/pkg/app/fusion"
	"github.com/modshield/modgate/pkg/app/moderation"
	"github.com/modshield/modgate/pkg/app/prescreen"
	"github.com/modshield/modgate/pkg/app/scheduler"
	"github.com/modshield/modgate/pkg/app/threat"
	"github.com/modshield/modgate/pkg/cache"
	"github.com/modshield/modgate/pkg/common"
	"github.com/modshield/modgate/pkg/config"
	domaintelemetry "github.com/modshield/modgate/pkg/domain/telemetry"
	handlers "github.com/modshield/modgate/pkg/handlers/http"
	"github.com/modshield/modgate/pkg/infra/analyzer"
	"github.com/modshield/modgate/pkg/infra/database"
	"github.com/modshield/modgate/pkg/infra/httpx"
	infraLogger "github.com/modshield/modgate/pkg/infra/logger"
	_ "github.com/modshield/modgate/pkg/infra/migrations"
	"github.com/modshield/modgate/pkg/infra/prometheus"
	providermoderation "github.com/modshield/modgate/pkg/infra/providers/moderation"
	"github.com/modshield/modgate/pkg/infra/providers/transcription"
	"github.com/modshield/modgate/pkg/infra/repository"
	"github.com/modshield/modgate/pkg/infra/telemetry"
	"github.com/modshield/modgate/pkg/infra/telemetry/kafka"
	"github.com/modshield/modgate/pkg/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger("modgate")

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	prometheus.Initialize(prometheus.MetricsConfig{EnableLatency: cfg.Metrics.EnableLatency})

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheInstance, err := cache.NewCache(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}

	// provider clients
	callTimeout := time.Duration(cfg.Analyzers.CallTimeoutSecs) * time.Second
	breakerReset := time.Duration(cfg.Analyzers.BreakerResetSecs) * time.Second
	httpClient := &http.Client{Timeout: callTimeout}

	moderationClient := providermoderation.NewClient(httpClient, cfg.Analyzers.ProviderBaseURL, cfg.Analyzers.APIKey)
	transcriptionClient := transcription.NewClient(httpClient, cfg.Analyzers.TranscriptionURL, cfg.Analyzers.APIKey)

	// analyzers
	textAnalyzer := analyzer.NewTextAnalyzer(
		logger, moderationClient,
		httpx.NewCircuitBreaker("text-analyzer", breakerReset, cfg.Analyzers.BreakerMaxFails),
		callTimeout,
	)
	imageAnalyzer := analyzer.NewImageAnalyzer(
		logger, moderationClient,
		httpx.NewCircuitBreaker("image-analyzer", breakerReset, cfg.Analyzers.BreakerMaxFails),
		callTimeout,
	)
	audioAnalyzer := analyzer.NewAudioAnalyzer(
		logger, transcriptionClient, textAnalyzer,
		httpx.NewCircuitBreaker("audio-analyzer", breakerReset, cfg.Analyzers.BreakerMaxFails),
		callTimeout,
	)
	videoAnalyzer := analyzer.NewVideoAnalyzer(
		logger, imageAnalyzer,
		time.Duration(cfg.Analyzers.FrameCadenceSecs)*time.Second,
		cfg.Analyzers.MaxSampledFrames,
	)
	registry := analyzer.NewRegistry(textAnalyzer, imageAnalyzer, audioAnalyzer, videoAnalyzer)

	// repository
	decisionRepository := repository.NewDecisionRepository(db.DB)
	appealRepository := repository.NewAppealRepository(db.DB)
	queueRepository := repository.NewQueueRepository(db.DB)
	auditRepository := repository.NewAuditRepository(db.DB)
	taskRepository := repository.NewTaskRepository(cacheInstance)
	seriesRepository := repository.NewRiskSeriesRepository(cacheInstance, common.DefaultDecisionWindow)

	// engines
	fusionEngine := fusion.NewEngine(cfg.Fusion)
	predictor := prescreen.NewPredictor(cfg.PreScreen)

	// Rehydrate the threat window from persisted decisions so a restart does
	// not reset the platform level to LOW.
	warmupCtx, warmupCancel := context.WithTimeout(ctx, 5*time.Second)
	recentDecisions, err := decisionRepository.ListRecent(warmupCtx, cfg.Threat.WindowSize)
	warmupCancel()
	if err != nil {
		logger.WithError(err).Warn("failed to load recent decisions, threat aggregator starting cold")
		recentDecisions = nil
	}
	aggregator := threat.NewAggregatorFromHistory(cfg.Threat, recentDecisions)
	recorder := appcorrelation.NewRecorder(seriesRepository, appcorrelation.NewEngine(cfg.Correlation), logger)

	// telemetry
	exporterLocator := telemetry.NewExporterLocator(
		telemetry.WithExporter(kafka.ExporterName, kafka.NewKafkaExporter()),
	)
	var exporter domaintelemetry.Exporter
	if cfg.Telemetry.Exporter != "" {
		exporter, err = exporterLocator.GetExporter(cfg.Telemetry.Exporter, cfg.Telemetry.Settings)
		if err != nil {
			logger.Fatalf("failed to initialize telemetry exporter: %v", err)
		}
	}

	orchestrator := moderation.NewOrchestrator(
		registry, fusionEngine,
		decisionRepository, queueRepository, taskRepository, auditRepository,
		predictor, aggregator, recorder, exporter, logger,
	)
	appealService := appappeal.NewService(
		appealRepository, decisionRepository, orchestrator, auditRepository, cfg.Appeals, logger,
	)

	sched := scheduler.NewScheduler(taskRepository, orchestrator, logger, cfg.Scheduler)
	go sched.Run(ctx)

	handlerTransport := handlers.HandlerTransport{
		// Moderation
		SubmitContentHandler:      handlers.NewSubmitContentHandler(logger, orchestrator),
		SubmitContentAsyncHandler: handlers.NewSubmitContentAsyncHandler(logger, orchestrator),
		GetDecisionHandler:        handlers.NewGetDecisionHandler(logger, decisionRepository, cacheInstance),
		// Appeals
		FileAppealHandler:    handlers.NewFileAppealHandler(logger, appealService),
		ResolveAppealHandler: handlers.NewResolveAppealHandler(logger, appealService),
		GetAppealHandler:     handlers.NewGetAppealHandler(logger, appealService),
		// Platform signals
		GetThreatLevelHandler:         handlers.NewGetThreatLevelHandler(logger, aggregator),
		GetCorrelationFindingsHandler: handlers.NewGetCorrelationFindingsHandler(logger, recorder),
		// Human review
		ListModerationQueueHandler: handlers.NewListModerationQueueHandler(logger, queueRepository),
		ReviewQueueItemHandler:     handlers.NewReviewQueueItemHandler(logger, queueRepository, auditRepository),
		ListAuditLogsHandler:       handlers.NewListAuditLogsHandler(logger, auditRepository),
	}

	srv := server.NewAPIServer(server.APIServerDI{
		HandlerTransport: handlerTransport,
		Config:           cfg,
		Logger:           logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	cancel()
	sched.Wait()
	if exporter != nil {
		exporter.Close()
	}
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}
