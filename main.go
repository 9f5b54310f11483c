package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devblog/pkg/config"
	"devblog/pkg/content"
	"devblog/pkg/handlers"
	"devblog/pkg/logger"
	"devblog/pkg/metrics"
	"devblog/pkg/middleware"
	"devblog/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	contentDir string
	verbose    bool
	watch      bool
)

var rootCmd = &cobra.Command{
	Use:   "devblog",
	Short: "devblog serves a static blog's articles as a JSON API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if contentDir != "" {
			cfg.ContentDir = contentDir
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		logger.Init(cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("watch") {
			cfg.ContentWatch = watch
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		store, err := loadStore(cfg)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, services.NewLibrary(store))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", "", "load articles from this directory instead of the built-in set")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	serveCmd.Flags().BoolVar(&watch, "watch", false, "reload articles when the content directory changes")
	rootCmd.AddCommand(serveCmd, articlesCmd, tagsCmd, slugifyCmd, newCmd)
}

// loadStore builds the content store from CONTENT_DIR or the embedded articles.
func loadStore(cfg *config.Config) (*services.Store, error) {
	var (
		fsys fs.FS = content.FS
		root       = content.Root
	)
	if cfg.ContentDir != "" {
		fsys, root = os.DirFS(cfg.ContentDir), "."
	}
	store, err := services.LoadStore(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	logger.Debugf("content: loaded %d articles, categories %v", store.Len(), store.Categories())
	return store, nil
}

// newLimiter picks the contact rate limiter: a shared Redis counter when
// REDIS_ADDR is set, otherwise in-process token buckets. The returned func
// releases the Redis client.
func newLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, func(), error) {
	if cfg.RedisAddr == "" {
		return middleware.NewRateLimiter(cfg.ContactRateRPS, cfg.ContactRateBurst), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	logger.Infof("rate limit: using redis at %s", cfg.RedisAddr)
	limiter := middleware.NewRedisRateLimiter(client, cfg.ContactRateRPS, cfg.ContactRateBurst, cfg.ContactRateWindow)
	return limiter, func() { client.Close() }, nil
}

func newRouter(cfg *config.Config, lib *services.Library, limiter middleware.Limiter, reg *prometheus.Registry) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := handlers.NewAPI(lib, services.NewContactService(cfg.ContactDelay), cfg.AppURL, cfg.ContactResetAfter)
	handlers.RegisterRoutes(r, api, cfg.SessionSecret, limiter)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return r
}

func serve(ctx context.Context, cfg *config.Config, lib *services.Library) error {
	if cfg.UsingDevSecret() {
		logger.Warnf("SESSION_SECRET is not set; using the development secret")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter, closeLimiter, err := newLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           newRouter(cfg, lib, limiter, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.ContentWatch {
		go func() {
			if err := services.WatchContent(ctx, cfg.ContentDir, lib, services.DefaultReloadDebounce); err != nil {
				logger.Errorf("content: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s with %d articles", cfg.ServerAddr, lib.Store().Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
