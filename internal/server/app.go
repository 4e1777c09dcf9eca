// Package server wires the node together: storage backend, services, the
// gRPC endpoint and the metrics endpoint, with signal-driven shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/logging"
	"github.com/iulianbarbu/solana-social-dapp/internal/program/instruction"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/config"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/metrics"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/repomanager"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/services"

	gs "github.com/iulianbarbu/solana-social-dapp/internal/server/grpc"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	grpcServer  *gs.GRPCServer
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := logging.NewFromConfig(os.Stdout, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, err
	}

	programID, err := pubkey.Parse(c.ProgramID)
	if err != nil {
		return nil, err
	}
	opcodes, err := instruction.ParseOpcodeSet(c.OpcodeSet)
	if err != nil {
		return nil, err
	}

	m, err := repomanager.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	as := services.NewAuthService(m, c)
	ls := services.NewLedgerService(m, programID, opcodes, logger.With("module", "ledger"))
	es := services.NewExportService(m, services.NewS3Store(c), c.PresignValidity)

	return &App{
		config:      c,
		logger:      logger,
		repomanager: m,
		grpcServer:  gs.NewGRPCServer(c.EndpointAddrGRPC, logger, as, ls, es, c.SecretKey),
	}, nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: app.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run migrates the store and serves until ctx is cancelled, a termination
// signal arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.repomanager.Close(); err != nil {
			app.logger.Error(ctx, "closing store", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return nil
}
