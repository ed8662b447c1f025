package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gardencam/internal/adapters/localstorage"
	"gardencam/internal/adapters/raspistill"
	"gardencam/internal/adapters/zesty"
	"gardencam/internal/config"
	"gardencam/internal/core/ports"
	"gardencam/internal/httpc"
	"gardencam/internal/log"
	"gardencam/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile  string
		once     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:          "gardencam",
		Short:        "Take a photo every interval and publish it to Zesty.io",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if interval != 0 {
				if err := cfg.SetInterval(interval); err != nil {
					return err
				}
			}
			log.Init(cfg.LogLevel)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			camera := raspistill.NewCamera(cfg.Capture.Command, cfg.Capture.Args)
			err = run(ctx, cfg, camera, once)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")
	cmd.Flags().BoolVar(&once, "once", false, "take a single photo and exit")
	cmd.Flags().DurationVar(&interval, "interval", 0, "override CAPTURE_INTERVAL")
	return cmd
}

// run authenticates, then either runs one cycle or loops until ctx is done.
// Authentication failures are returned before any capture happens.
func run(ctx context.Context, cfg *config.Config, camera ports.Camera, once bool) error {
	log.Info(service.MsgCameraOn)

	base := httpc.NewClient(cfg.HTTPTimeout)
	token, err := service.Authenticate(ctx, zesty.NewAuthClient(cfg.Zesty.AuthURL, base), cfg.Auth)
	if err != nil {
		log.Error("Authentication failed", "mode", cfg.Auth.Mode, "err", err)
		return fmt.Errorf("authenticate: %w", err)
	}
	log.Info("Authenticated", "mode", cfg.Auth.Mode, "instance", cfg.Zesty.InstanceZUID)

	storage := localstorage.NewLocalStorage(cfg.Capture.Dir)
	if err := storage.Init(); err != nil {
		return err
	}

	client := zesty.NewClient(zesty.Endpoints{
		AuthURL:     cfg.Zesty.AuthURL,
		MediaURL:    cfg.Zesty.MediaURL,
		InstanceURL: cfg.Zesty.InstanceURL,
	}, httpc.NewBearerClient(base, token))

	cycle := service.NewCycle(camera, client, client, storage, service.Targets{
		BinZUID:   cfg.Zesty.BinZUID,
		ModelZUID: cfg.Zesty.ModelZUID,
		UserZUID:  cfg.Zesty.UserZUID,
	}, log.L())

	loop, err := service.NewLoop(cycle, cfg.Capture.Interval, log.L())
	if err != nil {
		return err
	}
	if once {
		return loop.RunOnce(ctx)
	}
	return loop.Run(ctx)
}
