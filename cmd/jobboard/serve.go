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

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/careerhub/jobboard-web/internal/api"
	"github.com/careerhub/jobboard-web/internal/api/metrics"
	"github.com/careerhub/jobboard-web/internal/api/middleware"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/core/service"
	"github.com/careerhub/jobboard-web/internal/infrastructure/backend"
	mongostore "github.com/careerhub/jobboard-web/internal/infrastructure/db/mongo"
	redisstore "github.com/careerhub/jobboard-web/internal/infrastructure/db/redis"
	"github.com/careerhub/jobboard-web/internal/infrastructure/memory"
	"github.com/careerhub/jobboard-web/internal/infrastructure/queue"
	"github.com/careerhub/jobboard-web/internal/pkg/config"
	"github.com/careerhub/jobboard-web/internal/validation"
	"github.com/careerhub/jobboard-web/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start the HTTP server for the job board pages. Configuration is read from the environment.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

// stores bundles the session-scoped persistence of the selected backend.
type stores struct {
	sessions ports.SessionStore
	drafts   ports.DraftStore
	locks    ports.SubmitLock
	pingers  map[string]ports.Pinger
	close    func(context.Context)
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.Session.Store {
	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			ClientName: "jobboard-web/" + version,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session store: redis")
		return &stores{
			sessions: redisstore.NewSessionStore(client, cfg.Session.TTL),
			drafts:   redisstore.NewDraftStore(client, cfg.Forms.DraftTTL),
			locks:    redisstore.NewSubmitLock(client),
			pingers:  map[string]ports.Pinger{"redis": redisstore.Pinger{Client: client}},
			close:    func(context.Context) { _ = client.Close() },
		}, nil

	case config.BackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			AppName:     "jobboard-web/" + version,
			MaxPoolSize: cfg.Mongo.PoolSize,
		})
		if err != nil {
			return nil, err
		}
		sessions := mongostore.NewSessionStore(db, cfg.Session.TTL)
		drafts := mongostore.NewDraftStore(db, cfg.Forms.DraftTTL)
		if err := sessions.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		if err := drafts.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("session store: mongodb")
		return &stores{
			sessions: sessions,
			drafts:   drafts,
			locks:    mongostore.NewSubmitLock(db),
			pingers:  map[string]ports.Pinger{"mongodb": mongostore.Pinger{Client: client}},
			close:    func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil
	}

	log.Warn().Msg("session store: memory, sessions are lost on restart")
	return &stores{
		sessions: memory.NewSessionStore(),
		drafts:   memory.NewDraftStore(cfg.Forms.DraftTTL),
		locks:    memory.NewSubmitLock(),
		pingers:  map[string]ports.Pinger{},
		close:    func(context.Context) {},
	}, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "jobboard-web",
		Version: version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	client, err := backend.New(cfg.Backend.URL, backend.Options{
		Timeout:   cfg.Backend.Timeout,
		UserAgent: "jobboard-web/" + version,
		Observe:   metrics.ObserveUpstream,
	}, logger.Component("backend"))
	if err != nil {
		return err
	}
	st.pingers["backend"] = client

	validate, err := validation.New(time.Now)
	if err != nil {
		return fmt.Errorf("failed to load validation schemas: %w", err)
	}

	dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, logger.Component("dispatcher"))
	dispatcher.OnDrop(func(t queue.Task) {
		metrics.BackgroundTasksDroppedTotal.WithLabelValues(t.Name).Inc()
	})
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Deps{
		Sessions:  st.sessions,
		Auth:      service.NewAuthService(client, st.sessions, validate, dispatcher, logger.Component("auth")),
		Records:   service.NewRecordService(client, st.sessions, st.drafts, st.locks, validate, cfg.Forms.SubmitLockTTL, logger.Component("records")),
		Search:    service.NewSearchService(client, logger.Component("search")),
		Apps:      service.NewApplicationService(client, st.locks, validate, cfg.Forms.SubmitLockTTL, logger.Component("applications")),
		Blogs:     service.NewBlogService(client, logger.Component("blogs")),
		Admin:     service.NewAdminService(client, logger.Component("admin")),
		Files:     service.NewFileService(client, cfg.Forms.MaxUploadMB, logger.Component("files")),
		Validator: validate,
		Health:    st.pingers,
		Cookie: middleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.CookieSecure,
		},
		Log: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.URL).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := e.Shutdown(shutdownCtx)

	// Workers stop after the server so in-flight requests can still enqueue.
	stopWorkers()
	dispatcher.Wait()
	st.close(shutdownCtx)

	if shutdownErr != nil {
		return fmt.Errorf("server shutdown failed: %w", shutdownErr)
	}
	log.Info().Msg("server stopped")
	return nil
}
