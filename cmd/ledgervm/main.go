// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/ledgervm/api/jsonrpc"
	"github.com/ava-labs/ledgervm/config"
	"github.com/ava-labs/ledgervm/consts"
	"github.com/ava-labs/ledgervm/genesis"
	"github.com/ava-labs/ledgervm/node"
	"github.com/ava-labs/ledgervm/server"
	"github.com/ava-labs/ledgervm/storage"
	"github.com/ava-labs/ledgervm/trace"
)

const metricsBase = "metrics"

var rootCmd = &cobra.Command{
	Use:   consts.Name,
	Short: "Run a ledgervm node",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Verify(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return run(cmd.Context(), cfg)
	},
}

func run(ctx context.Context, cfg *config.Config) error {
	log := newLogger(cfg)
	defer log.Stop()

	tracer, err := trace.New(&cfg.Trace)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	defer tracer.Close()

	db, dbRegistry, err := storage.New(cfg.Pebble, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	g := &genesis.Genesis{}
	if len(cfg.GenesisFile) > 0 {
		g, err = genesis.LoadFile(cfg.GenesisFile)
		if err != nil {
			return fmt.Errorf("failed to load genesis: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	n, err := node.New(ctx, cfg, log, tracer, db, g, registry)
	if err != nil {
		return fmt.Errorf("failed to start node: %w", err)
	}
	defer n.Close()

	rpcHandler, err := jsonrpc.NewHandler(n, log, tracer)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", cfg.HTTPAddress())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.HTTPAddress(), err)
	}
	srv := server.New(log, listener, cfg.HTTP)
	if err := srv.AddRoute(rpcHandler, consts.Name, jsonrpc.Endpoint); err != nil {
		return err
	}
	gatherer := prometheus.Gatherers{registry, dbRegistry}
	if err := srv.AddRoute(server.NewMetricsHandler(gatherer), metricsBase, ""); err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		select {
		case sig := <-signals:
			log.Info("received signal", zap.Stringer("signal", sig))
		case <-egCtx.Done():
		}
		return srv.Shutdown()
	})
	return eg.Wait()
}

func main() {
	rootCmd.Flags().String("config", "", "Path to a JSON config file")
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
