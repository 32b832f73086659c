// @title			complytrack API
// @version		1.0
// @description	Compliance task workflow and risk aggregation.
// @BasePath		/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/complytrack/internal/config"
	"github.com/mtlprog/complytrack/internal/database"
	"github.com/mtlprog/complytrack/internal/domain"
	"github.com/mtlprog/complytrack/internal/events"
	"github.com/mtlprog/complytrack/internal/handler"
	"github.com/mtlprog/complytrack/internal/handler/dto"
	"github.com/mtlprog/complytrack/internal/logger"
	"github.com/mtlprog/complytrack/internal/repository"
	"github.com/mtlprog/complytrack/internal/service"
)

func main() {
	// A missing .env is fine; flags and the real environment still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "complytrack",
		Usage: "Compliance task workflow and risk aggregation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
			&cli.DurationFlag{
				Name:    "store-timeout",
				Value:   config.DefaultStoreTimeout,
				Usage:   "Upper bound for a single store call",
				EnvVars: []string{"STORE_TIMEOUT"},
			},
			&cli.IntFlag{
				Name:    "db-max-conns",
				Value:   config.DefaultMaxConns,
				Usage:   "PostgreSQL connection pool size",
				EnvVars: []string{"DB_MAX_CONNS"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "kafka-brokers",
						Usage:   "Comma-separated Kafka brokers; empty disables transition events",
						EnvVars: []string{"KAFKA_BROKERS"},
					},
					&cli.StringFlag{
						Name:    "kafka-topic",
						Value:   config.DefaultKafkaTopic,
						Usage:   "Kafka topic for transition events",
						EnvVars: []string{"KAFKA_TOPIC_TRANSITIONS"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations",
				Action: runMigrate,
			},
			{
				Name:  "seed",
				Usage: "Create task records for every catalog action on every asset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user-id",
						Usage:    "ID of the user the records are created by",
						Required: true,
					},
				},
				Action: runSeed,
			},
			{
				Name:  "risk",
				Usage: "Print the overall risk report, or one asset's report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "asset-id",
						Usage: "Report a single asset",
					},
				},
				Action: runRisk,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func serviceConfig(c *cli.Context) service.Config {
	return service.Config{StoreTimeout: c.Duration("store-timeout")}
}

// openDatabase connects and applies pending migrations.
func openDatabase(c *cli.Context) (*database.DB, error) {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"), database.Options{
		MaxConns: int32(c.Int("db-max-conns")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func newPublisher(c *cli.Context) (events.Publisher, error) {
	brokers := c.String("kafka-brokers")
	if brokers == "" {
		slog.Info("kafka brokers not configured, transition events disabled")
		return events.NopPublisher{}, nil
	}

	p, err := events.NewKafkaPublisher(brokers, c.String("kafka-topic"))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	slog.Info("publishing transition events", "brokers", brokers, "topic", c.String("kafka-topic"))
	return p, nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	publisher, err := newPublisher(c)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("failed to close event publisher", "error", err)
		}
	}()

	h := handler.New(db.Pool(), publisher, serviceConfig(c))

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.DefaultShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runMigrate(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	db.Close()
	return nil
}

func runSeed(c *cli.Context) error {
	ctx := c.Context

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pool := db.Pool()
	user, err := repository.NewUserRepository(pool).GetByID(ctx, c.String("user-id"))
	if err != nil {
		return fmt.Errorf("failed to load seeding user: %w", err)
	}
	if !user.IsActive {
		return fmt.Errorf("%w: %s", domain.ErrUserInactive, user.ID)
	}

	workflow := service.NewWorkflowService(
		repository.NewTaskRecordRepository(pool),
		repository.NewCatalogRepository(pool),
		repository.NewAssetRepository(pool),
		events.NopPublisher{},
		serviceConfig(c),
	)

	result, err := workflow.Seed(ctx, user.Actor())
	if err != nil {
		return fmt.Errorf("seed task records: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "created: %d, existing: %d, skipped assets: %d\n",
		result.Created, result.Existing, result.Skipped)
	return nil
}

// cliActor reads risk reports on behalf of the operator running the command.
var cliActor = domain.Actor{
	ID:           "cli",
	Role:         domain.RoleExecutive,
	Capabilities: domain.RoleExecutive.DefaultCapabilities(),
}

func runRisk(c *cli.Context) error {
	ctx := c.Context

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pool := db.Pool()
	risk := service.NewRiskService(
		repository.NewTaskRecordRepository(pool),
		repository.NewCatalogRepository(pool),
		repository.NewAssetRepository(pool),
		serviceConfig(c),
	)

	var out any
	if assetID := c.String("asset-id"); assetID != "" {
		report, err := risk.RiskByAsset(ctx, cliActor, assetID)
		if err != nil {
			return fmt.Errorf("compute risk for asset %s: %w", assetID, err)
		}
		out = dto.ToAssetRiskResponse(report)
	} else {
		report, err := risk.OverallRisk(ctx, cliActor)
		if err != nil {
			return fmt.Errorf("compute overall risk: %w", err)
		}
		out = dto.ToOverallRiskResponse(report)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
