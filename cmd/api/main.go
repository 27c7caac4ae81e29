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

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/delivery-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/delivery-scheduler/internal/db"
	"github.com/BruksfildServices01/delivery-scheduler/internal/observability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/routes"
)

func main() {
	root := &cobra.Command{
		Use:           "delivery-scheduler",
		Short:         "Agenda de entregas: disponibilidade e ciclo de vida dos agendamentos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ======================================================
// SERVE
// ======================================================

func serveCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Sobe a API HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg.Env, cfg.LogLevel)

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if autoMigrate {
				if err := dbpkg.Migrate(db); err != nil {
					return err
				}
			}

			rdb, err := newRedis(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			if rdb != nil {
				defer rdb.Close()
			}

			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()
			r.Use(gin.Recovery())

			shutdownWorkers := routes.RegisterRoutes(r, routes.Deps{
				DB:     db,
				Redis:  rdb,
				Config: cfg,
				Logger: logger,
			})
			defer shutdownWorkers()

			return run(cmd.Context(), cfg, r, logger)
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "roda o AutoMigrate antes de subir")
	return cmd
}

// newRedis devolve nil quando REDIS_ADDR não está configurado
func newRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("REDIS_ADDR not set, slot cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return rdb, nil
}

func run(ctx context.Context, cfg *config.Config, handler http.Handler, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ======================================================
// MIGRATE
// ======================================================

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria/atualiza as tabelas",
		RunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg.Env, cfg.LogLevel)

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			logger.Info().Msg("migration finished")
			return nil
		},
	}
}
