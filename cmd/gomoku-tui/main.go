package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jaminalder/gomoku/internal/app"
	"github.com/jaminalder/gomoku/internal/bootstrap"
	"github.com/jaminalder/gomoku/internal/tui"
)

func main() {
	cfgPath := pflag.StringP("config", "c", ".env", "path to the config file")
	logPath := pflag.String("log", "", "write logs to this file instead of discarding them")
	pflag.Parse()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup configuration: %v\n", err)
		os.Exit(1)
	}
	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logger := zap.NewNop().Sugar()
	if *logPath != "" {
		cfg.LogOutput = *logPath
		logger, err = bootstrap.NewLogger(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	ui := tui.New(logger, app.WithThinkDelay(cfg.AIThinkDelay))
	if err := ui.Run(); err != nil {
		logger.Errorw("terminal UI failed", "error", err)
		fmt.Fprintf(os.Stderr, "terminal UI failed: %v\n", err)
		os.Exit(1)
	}
}
