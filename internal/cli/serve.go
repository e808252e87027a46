package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayel/intranet/internal/api"
	"github.com/ayel/intranet/internal/api/middleware"
	"github.com/ayel/intranet/internal/core/ports"
	"github.com/ayel/intranet/internal/core/service"
	"github.com/ayel/intranet/internal/infrastructure/db/redis"
	"github.com/ayel/intranet/internal/infrastructure/scheduler"
	"github.com/ayel/intranet/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the intranet HTTP API and the scheduled-post publisher.

Configuration comes from the environment (PORT, JWT_SECRET, STORAGE_DRIVER,
MONGO_URI, REDIS_ADDR, SEED_FILE, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), rootOpts)
		},
	}
}

func serve(parent context.Context, opts *RootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())
	log := rt.log

	if rt.cfg.SeedFile != "" {
		if err := rt.applySeed(ctx, rt.cfg.SeedFile); err != nil {
			return err
		}
	}

	var (
		idem    ports.IdempotencyStore
		revoker ports.TokenRevoker
		revoked middleware.RevocationChecker
	)
	if rt.redis != nil {
		tr := redis.NewTokenRevoker(rt.redis)
		idem, revoker, revoked = redis.NewIdempotencyStore(rt.redis), tr, tr
	}

	s := rt.store
	posts := service.NewPostService(s.Posts, s.Comments, idem, logger.Component("posts"))
	router := api.NewRouter(api.Deps{
		Logger:     logger.Component("http"),
		JWTSecret:  rt.cfg.JWTSecret,
		Revoked:    revoked,
		Pingers:    rt.pingers,
		Auth:       service.NewAuthService(s.Users, s.Companies, revoker, rt.cfg.JWTSecret, rt.cfg.TokenTTL, logger.Component("auth")),
		Posts:      posts,
		Events:     service.NewEventService(s.Events, logger.Component("events")),
		Trainings:  service.NewTrainingService(s.Trainings, logger.Component("trainings")),
		Companies:  service.NewCompanyService(s.Companies, logger.Component("companies")),
		Extensions: service.NewExtensionService(s.Extensions, logger.Component("extensions")),
		Shortcuts:  service.NewShortcutService(s.Shortcuts, logger.Component("shortcuts")),
		Directory:  service.NewDirectoryService(s.Users, s.Companies, logger.Component("directory")),
	})

	publisherDone := scheduler.NewPublisher(posts, rt.cfg.PublishSweepInterval, logger.Component("publisher")).Start(ctx)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", rt.cfg.Port).Str("env", rt.cfg.Env).Msg("http server listening")
		if err := router.Start(":" + rt.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			stop()
			<-publisherDone
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	stop()
	<-publisherDone
	log.Info().Msg("server stopped")
	return nil
}
