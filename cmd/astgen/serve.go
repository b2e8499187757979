package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dusk-indust/astgen/internal/config"
	"github.com/dusk-indust/astgen/internal/mcptools"
	"github.com/dusk-indust/astgen/internal/rpc"
	"github.com/sirupsen/logrus"
)

// defaultAddr is the bind address when neither -addr nor the config file
// sets one.
const defaultAddr = "127.0.0.1:9131"

func serveAddr(flags cliFlags) string {
	if flags.Addr != "" {
		return flags.Addr
	}
	return defaultAddr
}

func runServeHTTP(logger *logrus.Logger, flags cliFlags, cfg *config.ProjectConfig) error {
	srv := rpc.NewServer(logger)
	srv.SetMaxBodyBytes(cfg.MaxSourceBytes)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx, serveAddr(flags)); err != nil {
		return err
	}
	logger.WithField("addr", srv.Addr()).Info("serving JSON-RPC")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func runServeMCPStdio(logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcptools.RunMCPServerStdio(ctx, mcptools.NewASTService(logger))
}

func runServeMCPHTTP(logger *logrus.Logger, flags cliFlags, cfg *config.ProjectConfig) error {
	svc := mcptools.NewASTService(logger)
	svc.SetMaxSourceBytes(int(cfg.MaxSourceBytes))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := serveAddr(flags)
	logger.WithField("addr", addr).Info("serving MCP over HTTP")
	return mcptools.RunMCPServer(ctx, svc, addr)
}
