package main

import (
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "docdrift/internal/adapters/mcp"
	"docdrift/internal/app"
	"docdrift/internal/config"
	"docdrift/internal/logger"
)

func main() {
	configFlag := flag.String("config", "", "config file (default $XDG_CONFIG_HOME/docdrift/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(config.New(), *configFlag)
	if err != nil {
		log.Fatalf("docdrift-mcp: %v", err)
	}
	// stdout carries the protocol; logs go to stderr
	zl, err := logger.New(logger.Options{Debug: cfg.Debug})
	if err != nil {
		log.Fatalf("docdrift-mcp: %v", err)
	}
	defer zl.Sync()

	a, err := app.New(cfg, zl)
	if err != nil {
		log.Fatalf("docdrift-mcp: %v", err)
	}
	defer a.Close()

	mcpServer := server.NewMCPServer(
		"docdrift-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpadapter.RegisterReadTools(mcpServer, a)
	mcpadapter.RegisterWriteTools(mcpServer, a)

	if err := server.ServeStdio(mcpServer); err != nil {
		zl.Error("server stopped", zap.Error(err))
	}
}
