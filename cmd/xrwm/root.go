package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/xrwm/internal/config"
	"github.com/1broseidon/xrwm/internal/daemon"
	"github.com/1broseidon/xrwm/internal/logging"
	"github.com/1broseidon/xrwm/internal/platform"
)

type rootOptions struct {
	configPath string
	display    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "xrwm",
		Short:        "A small tiling window manager for X11",
		Long:         "xrwm manages X11 windows with tags, keyboard chords and tiling, floating or monocle layouts.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel == "" {
				return nil
			}
			if err := config.ValidateLogLevel(opts.logLevel); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWM(opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file path (default: ~/.config/xrwm/config.yaml)")
	cmd.Flags().StringVar(&opts.display, "display", "", "X display to manage (default: $DISPLAY)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Override log_level: debug, info, warn, error")

	cmd.AddCommand(newConfigCmd())
	return cmd
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runWM(opts *rootOptions) error {
	res, err := loadConfig(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := res.Config

	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger, closer, err := logging.New(level, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer closer.Close()
	if len(res.Files) > 0 {
		logger.Info("configuration loaded", "files", res.Files)
	}

	display := opts.display
	if display == "" {
		display = cfg.Display
	}
	backend, err := platform.Connect(display)
	if err != nil {
		logger.Error("failed to take over display", "display", display, "error", err)
		return err
	}
	defer backend.Close()

	d, err := daemon.New(daemon.Options{
		Config:  cfg,
		Backend: backend,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("xrwm started", "display", display)
	err = d.Run(ctx)
	var connErr *daemon.ConnectionError
	if errors.As(err, &connErr) {
		logger.Error("display connection lost", "error", err)
		return err
	}
	if err != nil {
		logger.Error("window manager stopped", "error", err)
		return err
	}
	logger.Info("xrwm exiting")
	return nil
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	log.SetPrefix("xrwm: ")
}
