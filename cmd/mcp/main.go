// Command mcp serves the Career Insight tools over the MCP stdio transport.
//
// Stdout carries the protocol, so logs go to stderr.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Dinesh-rish/Career-Insight/internal/adapter/ai/tokencount"
	"github.com/Dinesh-rish/Career-Insight/internal/adapter/observability"
	"github.com/Dinesh-rish/Career-Insight/internal/app"
	"github.com/Dinesh-rish/Career-Insight/internal/config"
	"github.com/Dinesh-rish/Career-Insight/internal/mcpserver"
	"github.com/Dinesh-rish/Career-Insight/internal/questionbank"
	"github.com/Dinesh-rish/Career-Insight/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(observability.SetupStderrLogger(cfg))

	bank, err := questionbank.Load(cfg.QuestionBankPath)
	if err != nil {
		return fmt.Errorf("loading question bank: %w", err)
	}
	aicl, err := app.NewAIClient(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("creating ai client: %w", err)
	}
	if !aicl.HasCredential() {
		slog.Warn("ai credential not configured", slog.String("provider", aicl.Provider()))
	}

	s := mcpserver.New(bank, usecase.NewAnalysisService(aicl, bank, tokencount.DefaultCounter))
	return server.ServeStdio(s)
}
