package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"whenandwhere/config"
	_ "whenandwhere/docs"
	"whenandwhere/internal/adapters/auth"
	"whenandwhere/internal/adapters/diaglog"
	"whenandwhere/internal/adapters/email"
	"whenandwhere/internal/adapters/metrics"
	httpdelivery "whenandwhere/internal/delivery/http"
	"whenandwhere/internal/delivery/http/controllers"
	"whenandwhere/internal/domain"
	"whenandwhere/internal/repository/memory"
	"whenandwhere/internal/repository/postgres"
	"whenandwhere/internal/services"
)

const shutdownTimeout = 15 * time.Second

// @title When & Where API
// @version 1.0
// @description Propose an event with candidate dates, invite people, collect their availability and find the most popular slot.
// @BasePath /
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := &cli.App{
		Name:  "whenandwhere",
		Usage: "Event availability scheduling service.",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "err", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "Listen port. Overrides PORT."},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if c.IsSet("port") {
				cfg.Port = c.String("port")
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply the database schema.",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := config.NewLogger(cfg, os.Stdout)
			db, err := postgres.Open(c.Context, cfg.DBUrl)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := postgres.Migrate(c.Context, db); err != nil {
				return err
			}
			logger.Info("schema applied")
			return nil
		},
	}
}

// repositories groups the storage ports selected by DATA_SOURCE.
type repositories struct {
	events    domain.EventRepository
	attendees domain.AttendeeRepository
	responses domain.ResponseRepository
	logs      domain.LogRepository
	close     func() error
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.DataSource == config.DataSourceMemory {
		store := memory.NewStore()
		return &repositories{
			events:    store.Events(),
			attendees: store.Attendees(),
			responses: store.Responses(),
			logs:      store.Logs(),
			close:     func() error { return nil },
		}, nil
	}
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &repositories{
		events:    postgres.NewEventRepository(db),
		attendees: postgres.NewAttendeeRepository(db),
		responses: postgres.NewResponseRepository(db),
		logs:      postgres.NewLogRepository(db),
		close:     db.Close,
	}, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.DataSource, err)
	}
	defer repos.close()

	logger := slog.New(diaglog.NewHandler(config.NewHandler(cfg, os.Stdout), repos.logs, slog.LevelWarn))
	slog.SetDefault(logger)
	logger.Info("store ready", "data_source", cfg.DataSource)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("load email templates: %w", err)
	}
	notifier := services.NewEmailService(mailer, renderer, logger)
	m := metrics.New()

	eventSvc := services.NewEventService(repos.events, repos.attendees, repos.responses, notifier, m, cfg.AppURL, cfg.RequestTimeout)
	responseSvc := services.NewResponseService(repos.events, repos.attendees, repos.responses, notifier, m, cfg.AppURL, cfg.RequestTimeout)
	adminSvc := services.NewAdminService(eventSvc, repos.events, repos.attendees, repos.responses, repos.logs, cfg.RequestTimeout)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	passwordHash := cfg.AdminPasswordHash
	if passwordHash == "" && cfg.AdminPassword != "" {
		if passwordHash, err = hasher.Hash(cfg.AdminPassword); err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
	}
	if !cfg.AdminEnabled() {
		logger.Warn("admin credentials not configured; admin endpoints will reject every request")
	}
	authn := auth.NewAdminAuthenticator(cfg.AdminUsername, passwordHash, hasher)

	handler := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Logger:             logger,
		EventController:    controllers.NewEventController(logger, eventSvc),
		ResponseController: controllers.NewResponseController(logger, responseSvc, eventSvc),
		AdminController:    controllers.NewAdminController(logger, adminSvc, authn, auth.NewJWTIssuer(cfg.JWTSecret), cfg.AdminTokenTTL),
		AdminAuth:          authn,
		TokenVerifier:      auth.NewJWTVerifier(cfg.JWTSecret),
		Metrics:            m,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
