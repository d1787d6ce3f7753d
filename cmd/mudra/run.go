package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the camera and start gesture control",
		RunE:  runGestures,
	}

	cmd.Flags().Int("camera", 0, "camera device index")
	cmd.Flags().Duration("cooldown", 0, "minimum time between actions (e.g. 1.5s)")
	cmd.Flags().String("sink", "", "action sink: keys or plugin")
	cmd.Flags().String("history", "", "sqlite file to journal dispatched actions")
	cmd.Flags().Bool("no-mirror", false, "do not mirror the camera image")
	return cmd
}

// applyRunFlags overrides cfg with the flags the operator set explicitly.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("camera") {
		cfg.CameraID, _ = flags.GetInt("camera")
	}
	if flags.Changed("cooldown") {
		cfg.Cooldown, _ = flags.GetDuration("cooldown")
	}
	if flags.Changed("sink") {
		cfg.Sink, _ = flags.GetString("sink")
	}
	if flags.Changed("history") {
		cfg.History, _ = flags.GetString("history")
	}
	if noMirror, _ := flags.GetBool("no-mirror"); noMirror {
		cfg.Mirror = false
	}
	return cfg.Validate()
}

func runGestures(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, &cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sink, err := app.NewSink(cfg, logger)
	if err != nil {
		return err
	}

	opts := []app.Option{app.WithLogger(logger)}
	if cfg.History != "" {
		st, err := store.New(cfg.History)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer st.Close()
		logger.Info("journal enabled", zap.String("path", st.Path()))
		opts = append(opts, app.WithJournal(st.Events()))
	}

	a, err := app.New(cfg, sink, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printBanner(out)
	printGuide(out)
	printTips(out, a.Dispatcher().Interval())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting gesture control",
		zap.Int("camera", cfg.CameraID),
		zap.String("sink", cfg.Sink),
		zap.Duration("cooldown", a.Dispatcher().Interval()),
	)
	started := time.Now()
	err = a.Run(ctx)
	fmt.Fprintf(out, "\n  Goodbye! Session lasted %s.\n", time.Since(started).Round(time.Second))

	if errors.Is(err, app.ErrFrameCapture) {
		logger.Warn("camera stopped delivering frames", zap.Error(err))
		return nil
	}
	return err
}
