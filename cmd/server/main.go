package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paroquia_connect/internal/config"
	"paroquia_connect/internal/handler"
	"paroquia_connect/internal/logger"
	"paroquia_connect/internal/mailer"
	"paroquia_connect/internal/repository"
	"paroquia_connect/internal/service"
	"paroquia_connect/internal/utils"

	"github.com/go-extras/cobraflags"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const envFileFlag = "env-file"

var commonFlags = map[string]cobraflags.Flag{
	envFileFlag: &cobraflags.StringFlag{
		Name:  envFileFlag,
		Value: ".env",
		Usage: "Path to an env file read before the process environment",
	},
}

var rootCmd = &cobra.Command{
	Use:   "paroquia-connect",
	Short: "Paróquia Connect API server",
	Long: `Runs the Paróquia Connect HTTP API.

Without a subcommand the server applies the schema and starts listening.

Examples:
  paroquia-connect                       # Serve using ./.env
  paroquia-connect --env-file prod.env   # Serve using another env file
  paroquia-connect migrate               # Apply the schema and exit`,
	SilenceUsage: true,
	RunE:         serveCommand,
}

func main() {
	cobraflags.RegisterMap(rootCmd, commonFlags)
	rootCmd.AddCommand(newMigrateCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables if they don't exist",
		RunE:  migrateCommand,
	}

	cobraflags.RegisterMap(migrateCmd, commonFlags)
	return migrateCmd
}

func bootstrap() (*config.App, zerolog.Logger, error) {
	cfg, dotenvFound, err := config.Load(commonFlags[envFileFlag].GetString())
	if err != nil {
		return nil, logger.New("info", false), err
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	if !dotenvFound {
		log.Info().Msg("no env file found, relying on environment variables")
	}
	return cfg, log, nil
}

func migrateCommand(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return err
	}

	dbPool, err := config.ConnectDB(cmd.Context(), cfg.DB, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer dbPool.Close()

	return config.AutoMigrate(cmd.Context(), dbPool, log)
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return err
	}
	ctx := cmd.Context()

	// --- Database ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(ctx, dbPool, log); err != nil {
		log.Error().Err(err).Msg("failed to auto-migrate database")
		return err
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	sessionRepo := repository.NewSessionRepository(dbPool)
	eventRepo := repository.NewEventRepository(dbPool)
	registrationRepo := repository.NewRegistrationRepository(dbPool)
	agendaRepo := repository.NewAgendaRepository(dbPool)
	announcementRepo := repository.NewAnnouncementRepository(dbPool)
	dashboardRepo := repository.NewDashboardRepository(dbPool)

	if purged, err := sessionRepo.DeleteExpired(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to purge expired sessions")
	} else if purged > 0 {
		log.Info().Int64("count", purged).Msg("purged expired sessions")
	}

	// --- Services ---
	tokens := utils.NewSessionTokenUtil(cfg.SecretKey, cfg.SessionTTLHours)
	mail := mailer.NewSMTPMailer(cfg.Mail, log)

	svcs := handler.Services{
		Auth:          service.NewAuthService(userRepo, sessionRepo, tokens, mail, cfg.InitialAdminEmail, log),
		Events:        service.NewEventService(eventRepo, registrationRepo),
		Agenda:        service.NewAgendaService(agendaRepo),
		Schedules:     service.NewScheduleService(agendaRepo),
		Announcements: service.NewAnnouncementService(announcementRepo),
		Dashboard:     service.NewDashboardService(dashboardRepo),
		Admin:         service.NewAdminService(userRepo),
		Contact:       service.NewContactService(mail, cfg.Mail.TargetEmail, log),
	}

	router, err := handler.NewRouter(svcs, handler.RouterConfig{
		FrontendURL: cfg.FrontendURL,
		Cookie: handler.CookieConfig{
			TTL:    tokens.TTL(),
			Secure: cfg.SessionCookieSecure,
		},
	}, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to build router")
		return err
	}

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("listen failed")
			return fmt.Errorf("listen: %w", err)
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exiting")
	return nil
}
