// Package main - Entry point for the MSP pricing API server
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"msp-pricing/api"
	"msp-pricing/core/types"
	"msp-pricing/internal/config"
	"msp-pricing/internal/logging"
)

const version = "1.0.0"

func main() {
	types.UseNumericMoneyJSON()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "msp-pricing-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "config file (default is $HOME/.msp-pricing.json)")
	addr := flag.String("addr", "", "server address (overrides config)")
	catalogPath := flag.String("catalog", "", "HCL catalog file (overrides config)")
	flag.Parse()

	path := *cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer logging.Sync()

	cat, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}
	logging.Info("catalog loaded",
		zap.String("version", cat.Version()),
		zap.String("fingerprint", cat.Fingerprint().Short()),
		zap.String("source", catalogSource(cfg.Catalog.Path)),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewServer(version, cat, logging.Logger),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logging.Info("listening", zap.String("addr", srv.Addr), zap.String("version", version))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func catalogSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
