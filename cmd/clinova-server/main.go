package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinova/clinova/internal/config"
	"github.com/clinova/clinova/internal/domain/insurance"
	"github.com/clinova/clinova/internal/domain/patient"
	"github.com/clinova/clinova/internal/domain/provider"
	"github.com/clinova/clinova/internal/domain/records"
	"github.com/clinova/clinova/internal/domain/scheduling"
	"github.com/clinova/clinova/internal/domain/staff"
	"github.com/clinova/clinova/internal/platform/auth"
	"github.com/clinova/clinova/internal/platform/db"
	"github.com/clinova/clinova/internal/platform/middleware"
	"github.com/clinova/clinova/internal/platform/telemetry"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinova-server",
		Short: "Clinova clinic management API server",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd(), userCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "migrations", "migrations directory")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				pool, err := connect(ctx)
				if err != nil {
					return err
				}
				defer pool.Close()

				count, err := db.NewMigrator(pool, dir).Up(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("applied %d migration(s)\n", count)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				pool, err := connect(ctx)
				if err != nil {
					return err
				}
				defer pool.Close()

				statuses, err := db.NewMigrator(pool, dir).Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied " + s.AppliedAt.Format(time.RFC3339)
					}
					fmt.Printf("%03d %-40s %s\n", s.Version, s.Name, state)
				}
				return nil
			},
		},
	)

	return cmd
}

func userCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}

	createCmd := &cobra.Command{
		Use:   "create <username> <password>",
		Short: "Create an API user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := staff.NewService(staff.NewRepoPG(pool), staff.NewUserRepoPG(pool))
			u, err := svc.CreateUser(ctx, args[0], args[1], role, nil)
			if err != nil {
				return err
			}
			fmt.Printf("created user %s (%s)\n", u.Username, u.Role)
			return nil
		},
	}
	createCmd.Flags().StringVar(&role, "role", "staff", "user role (admin or staff)")

	cmd.AddCommand(createCmd)
	return cmd
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	var logger zerolog.Logger
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(telemetry.Middleware())

	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLHours)*time.Hour)
	if cfg.IsDev() && cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET not set, running with dev auth, all requests are treated as admin")
		e.Use(auth.DevMiddleware())
	} else {
		e.Use(auth.Middleware(issuer))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
	})
	e.GET("/health/db", db.HealthHandler(pool))
	e.GET("/metrics", telemetry.Handler())

	rlCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rlCfg.RequestsPerSecond <= 0 {
		rlCfg = middleware.DefaultRateLimitConfig()
	}

	api := e.Group("/api", middleware.RateLimit(rlCfg))
	admin := api.Group("/admin", auth.RequireRole("admin"))
	staffAPI := api.Group("/staff", auth.RequireRole("admin", "staff"))

	directory := scheduling.NewDirectoryPG(pool)

	patientSvc := patient.NewService(patient.NewRepoPG(pool))
	patient.NewHandler(patientSvc).RegisterRoutes(api)

	providerSvc := provider.NewService(provider.NewRepoPG(pool))
	provider.NewHandler(providerSvc).RegisterRoutes(api)

	schedulingSvc := scheduling.NewService(
		scheduling.NewAppointmentRepoPG(pool),
		scheduling.NewRoomRepoPG(pool),
		directory,
		directory,
	)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(api)

	recordsSvc := records.NewService(records.NewNoteRepoPG(pool), records.NewDocumentRepoPG(pool), directory)
	records.NewHandler(recordsSvc).RegisterRoutes(api)

	insuranceSvc := insurance.NewService(insurance.NewRepoPG(pool))
	insurance.NewHandler(insuranceSvc).RegisterRoutes(api)

	staffSvc := staff.NewService(staff.NewRepoPG(pool), staff.NewUserRepoPG(pool))
	staff.NewHandler(staffSvc, issuer).RegisterRoutes(api, admin, staffAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
