package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/photostamp/internal/labeler"
	"github.com/Nomadcxx/photostamp/internal/scan"
	"github.com/Nomadcxx/photostamp/internal/ui"
	"github.com/Nomadcxx/photostamp/internal/watch"
)

var (
	watchMode   string
	settleDelay time.Duration
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a directory and stamp photos as they arrive",
		Long: `Watch a directory and stamp every new photo the moment it settles on
disk. Runs until interrupted.

Examples:
  photostamp watch ~/Pictures/incoming
  photostamp watch --mode timestamp ~/Pictures/incoming`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchMode, "mode", "m", "age", "label mode: age or timestamp")
	cmd.Flags().StringVarP(&birthDate, "birth-date", "b", "", "birth date YYYY-MM-DD (overrides config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default: <directory>/output)")
	cmd.Flags().DurationVar(&settleDelay, "settle", 2*time.Second, "how long a new file must stay unchanged before stamping")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := argDir(args)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}

	var m mode
	switch watchMode {
	case "age":
		m = modeAge
	case "timestamp":
		m = modeTimestamp
	default:
		return fmt.Errorf("unknown mode %q (want age or timestamp)", watchMode)
	}

	p, err := buildPipeline(m)
	if err != nil {
		return err
	}
	defer p.log.Close()

	outDir, err := scan.EnsureOutputDir(dir, p.cfg.Options.OutputDir)
	if err != nil {
		return err
	}

	w, err := watch.New(p.processor,
		watch.WithSettleDelay(settleDelay),
		watch.WithLogger(p.log),
		watch.WithResultFunc(func(fr labeler.FileResult) {
			name := filepath.Base(fr.SourcePath)
			switch {
			case fr.Err != nil:
				ui.ErrorMsg("%s: %v", name, fr.Err)
			case fr.Skipped:
				fmt.Println(ui.Dim("- " + name + " (" + fr.SkipReason + ")"))
			default:
				ui.SuccessMsg("%s -> %s", name, ui.Label(fr.Label))
			}
		}),
	)
	if err != nil {
		return err
	}

	ui.Section(fmt.Sprintf("photostamp watch (%s)", p.labelKind))
	ui.InfoMsg("watching %s", ui.Path(dir))
	ui.InfoMsg("output %s", ui.Path(outDir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx, dir, outDir); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
