// Package main boots the Versioned Product API HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/audit"
	"github.com/fairyhunter13/versioned-product-api/internal/catalog"
	"github.com/fairyhunter13/versioned-product-api/internal/config"
	httpapi "github.com/fairyhunter13/versioned-product-api/internal/http"
	"github.com/fairyhunter13/versioned-product-api/internal/obs"
	"github.com/fairyhunter13/versioned-product-api/internal/queue"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	app := &cli.App{
		Name:  "versioned-product-api",
		Usage: "serve the product catalog under API versions 1.0 and 2.0",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (overrides HTTP_ADDR)"},
			&cli.StringFlag{Name: "default-version", Usage: "version used when a request names none (overrides DEFAULT_API_VERSION)"},
			&cli.StringFlag{Name: "store-layout", Usage: "shared or split (overrides STORE_LAYOUT)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides LOG_LEVEL)"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		obs.Logger.Error("service_failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies any flags that were set.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if c.IsSet("addr") {
		cfg.HTTPAddr = c.String("addr")
	}
	if c.IsSet("default-version") {
		cfg.DefaultAPIVersion = c.String("default-version")
	}
	if c.IsSet("store-layout") {
		cfg.StoreLayout = c.String("store-layout")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, cfg.Validate()
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	obs.InitLogger(cfg.LogLevel)
	obs.Logger.Info("service_starting",
		"store_layout", cfg.StoreLayout,
		"default_api_version", cfg.DefaultAPIVersion,
	)

	layout, err := catalog.ParseLayout(cfg.StoreLayout)
	if err != nil {
		return err
	}
	stores := catalog.NewStores(layout)
	if cfg.SeedCatalog {
		stores.Seed(time.Now().UTC())
	}

	journal := audit.NewJournal(cfg.AuditHistory)
	mgr := queue.NewManager(queue.New(cfg.AuditBuffer), journal, cfg.AuditWorkers)
	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	mgr.Start(feedCtx)

	app := httpapi.NewApp(cfg, stores, mgr, journal)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		obs.Logger.Info("shutdown_begin", "backlog_size", mgr.Stats().Backlog, "worker_count", mgr.WorkerCount())
		app.StartShutdown()

		drainCtx, cancelDrain := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelDrain()
		if mgr.DrainUntil(drainCtx) {
			obs.Logger.Info("shutdown_drain_complete")
		} else {
			obs.Logger.Warn("shutdown_drain_timeout")
		}

		srvCtx, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelSrv()
		if err := srv.Shutdown(srvCtx); err != nil {
			return errors.Wrap(err, "http shutdown")
		}
		return nil
	})

	err = g.Wait()
	mgr.Stop()
	obs.Logger.Info("service_stopped")
	return err
}
