package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	logger_adapter "search-service/internal/adapters/logger"
	postgres_adapter "search-service/internal/adapters/postgres"
	rabbitmq_adapter "search-service/internal/adapters/rabbitmq"
	"search-service/internal/adapters/rest"
	"search-service/internal/configs"
	"search-service/internal/core/port"
	"search-service/internal/core/usecase"
	"search-service/pkg/fluentlogger"
	"search-service/pkg/postgres"
	"search-service/pkg/rabbitmq/rabbitmq_common"
	"search-service/pkg/rabbitmq/rabbitmq_producer"
)

type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	searchEventsProducer *rabbitmq_producer.Publisher
}

// NewApp is the composition root: every dependency is created and wired here.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- Loggers ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- Storage ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	queryTimeout := time.Duration(appConfig.Database.QueryTimeoutMs) * time.Millisecond

	listingRepository, err := postgres_adapter.NewListingRepository(dbPool, queryTimeout)
	if err != nil {
		appLogger.Error("Failed to create postgres listing repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres listing repository: %w", err)
	}

	filterRepository, err := postgres_adapter.NewFilterRepository(dbPool, queryTimeout)
	if err != nil {
		appLogger.Error("Failed to create postgres filter repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres filter repository: %w", err)
	}

	appLogger.Info("Postgres repositories initialized.", nil)

	// --- Outgoing analytics events (optional) ---
	var searchEventsReporter port.SearchEventReporterPort
	var searchEventsProducer *rabbitmq_producer.Publisher
	if appConfig.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(
			baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		producerCfg := rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             appConfig.RabbitMQ.Exchange,
			ExchangeType:             "direct",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,

			Logger: rabbitmq_adapter.NewPkgLoggerBridge(
				baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}
		searchEventsProducer, err = rabbitmq_producer.NewPublisher(producerCfg, connManager)
		if err != nil {
			appLogger.Error("Failed to create search events producer", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create search events producer: %w", err)
		}

		searchEventsReporter, err = rabbitmq_adapter.NewSearchEventReporterAdapter(
			searchEventsProducer, appConfig.RabbitMQ.SearchEventsRoutingKey)
		if err != nil {
			appLogger.Error("Failed to create search event reporter", err, nil)
			dbPool.Close()
			return nil, err
		}
		appLogger.Info("RabbitMQ search events pipeline initialized.", nil)
	} else {
		appLogger.Info("RabbitMQ disabled, search events will not be published.", nil)
	}

	// --- Use cases ---
	searchListingsUseCase := usecase.NewSearchListingsUseCase(listingRepository, searchEventsReporter)
	getListingDetailsUseCase := usecase.NewGetListingDetailsUseCase(listingRepository)
	getSimilarListingsUseCase := usecase.NewGetSimilarListingsUseCase(listingRepository)
	getFilterOptionsUseCase := usecase.NewGetFilterOptionsUseCase(listingRepository, filterRepository)
	getDictionariesUseCase := usecase.NewGetDictionariesUseCase(filterRepository)

	appLogger.Info("All use cases initialized.", nil)

	// --- REST API server ---
	searchHandler := rest.NewSearchHandler(searchListingsUseCase)
	listingHandler := rest.NewListingHandler(getListingDetailsUseCase, getSimilarListingsUseCase)
	filterHandler := rest.NewFilterHandler(getFilterOptionsUseCase, getDictionariesUseCase)

	apiServer := rest.NewServer(appConfig.Rest.PORT, searchHandler, listingHandler, filterHandler, dbPool.Ping, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return &App{
		config:               appConfig,
		dbPool:               dbPool,
		apiServer:            apiServer,
		fluentClient:         fluentClient,
		logger:               appLogger,
		searchEventsProducer: searchEventsProducer,
	}, nil
}

// Run starts the components and blocks until a shutdown signal or a critical
// component failure.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := a.apiServer.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
			cancel()
		}

		if a.searchEventsProducer != nil {
			if err := a.searchEventsProducer.Close(); err != nil {
				a.logger.Error("Error closing search events producer", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Log to stdout, fluent itself may already be unreachable.
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	}

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
