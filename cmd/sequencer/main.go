// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// sequencer is the process entry point: out of scope for the core itself
// (spec §1), it only bootstraps the core's constructors from a loaded
// Config. Grounded on the teacher's cmd/evm-node main, which wires
// urfave/cli the same way.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/urfave/cli/v2"

	appconfig "github.com/luxfi/sequencer-core/config"
	"github.com/luxfi/sequencer-core/core/sequencer"
	"github.com/luxfi/sequencer-core/core/sequencer/metrics"
	"github.com/luxfi/sequencer-core/l1"
	"github.com/luxfi/sequencer-core/registry"
	"github.com/luxfi/sequencer-core/rpcserver"
)

const clientIdentifier = "sequencer"

func main() {
	app := &cli.App{
		Name:            clientIdentifier,
		Usage:           "L2 rollup sequencer core",
		Action:          run,
		SkipFlagParsing: true, // all real flag parsing is delegated to pflag/viper, see run()
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(*cli.Context) error {
	fs := appconfig.BuildFlagSet()
	v, err := appconfig.BuildViper(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("couldn't build viper: %w", err)
	}

	cfg, err := appconfig.BuildConfig(v)
	if err != nil {
		return fmt.Errorf("couldn't build config: %w", err)
	}

	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, levelFromString(cfg.LogLevel), true)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	state := sequencer.NewStateCache()
	validator := sequencer.NewValidator(state, cfg.Batch.MaxGasLimit)
	pool := sequencer.NewTxPool()
	forcedQueue := sequencer.NewForcedQueue()

	admission := sequencer.NewAdmission(validator, state, pool, m)

	policy := sequencer.NewPolicy(cfg.Scheduling.ToCore())
	scheduler := sequencer.NewScheduler(policy)
	engine := sequencer.NewBatchEngine(cfg.Batch.MaxGasLimit)

	sink := &registry.BatchSinkAdapter{Sink: &registry.LoggingSink{Inner: registry.NewMemoryRegistry()}}

	orchestrator := sequencer.NewOrchestrator(forcedQueue, pool, scheduler, engine, cfg.Batch.ToCore(), sink, m)
	go orchestrator.Run(ctx)

	listener := l1.NewListener(cfg.L1, forcedQueue)
	go func() {
		if err := listener.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("L1 listener stopped", "err", err)
		}
	}()

	server := rpcserver.New(admission)
	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe(addr) }()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		return nil
	case err := <-errCh:
		return fmt.Errorf("RPC server stopped: %w", err)
	}
}

// levelFromString maps a config log-level name onto the slog-based level
// the go-ethereum log package has used since it dropped its legacy
// log15-style API.
func levelFromString(s string) slog.Level {
	switch s {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	case "crit":
		return log.LevelCrit
	default:
		return log.LevelInfo
	}
}
