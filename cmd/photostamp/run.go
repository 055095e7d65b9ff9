package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Nomadcxx/photostamp/internal/age"
	"github.com/Nomadcxx/photostamp/internal/config"
	"github.com/Nomadcxx/photostamp/internal/labeler"
	"github.com/Nomadcxx/photostamp/internal/logging"
	"github.com/Nomadcxx/photostamp/internal/scan"
	"github.com/Nomadcxx/photostamp/internal/stamp"
	"github.com/Nomadcxx/photostamp/internal/ui"
)

// pipeline bundles everything a batch or watch run needs.
type pipeline struct {
	cfg       *config.Config
	log       *logging.Logger
	processor *labeler.Processor
	labelKind string
}

func buildPipeline(m mode) (*pipeline, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if birthDate != "" {
		cfg.Reference.BirthDate = birthDate
	}
	if outputDir != "" {
		cfg.Options.OutputDir = outputDir
	}
	if exifFallback {
		cfg.Options.EXIFFallback = true
	}
	if noOverwrite {
		cfg.Options.Overwrite = false
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("unable to set up logging: %w", err)
	}

	stamper, err := stamp.New(
		stamp.WithFontPaths(cfg.Stamp.Fonts),
		stamp.WithJPEGQuality(cfg.Stamp.JPEGQuality),
	)
	if err != nil {
		return nil, err
	}
	if stamper.UsingFallbackFont() && m == modeAge {
		ui.WarningMsg("no CJK font found, age labels may render as boxes (using %s)", stamper.FontSource())
	}

	var lbl age.Labeler
	kind := "timestamp"
	if m == modeAge {
		birth, err := cfg.ParseBirthDate()
		if err != nil {
			return nil, err
		}
		lbl = age.NewAgeLabeler(birth)
		kind = "age"
	} else {
		lbl = age.TimestampLabeler{}
	}

	processor := labeler.New(lbl, stamper, m.position(),
		labeler.WithDryRun(dryRun),
		labeler.WithEXIFFallback(cfg.Options.EXIFFallback),
		labeler.WithOverwrite(cfg.Options.Overwrite),
		labeler.WithOutputDir(cfg.Options.OutputDir),
		labeler.WithLogger(log),
	)

	return &pipeline{cfg: cfg, log: log, processor: processor, labelKind: kind}, nil
}

func runBatch(dir string, m mode) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}

	p, err := buildPipeline(m)
	if err != nil {
		return err
	}
	defer p.log.Close()

	ui.Section(fmt.Sprintf("photostamp %s", p.labelKind))
	if m == modeAge {
		ui.InfoMsg("birth date: %s", p.cfg.Reference.BirthDate)
	}
	if dryRun {
		ui.InfoMsg("dry run, no files will be written")
	}

	// Interactive runs get a bar; verbose and dry runs keep the per-file
	// lines, and piped output stays line oriented too.
	barMode := !verbose && !dryRun && ui.IsTerminal()
	if barMode {
		files, err := scan.Images(dir)
		if err != nil {
			return err
		}
		bar := ui.NewProgressBar(len(files), "stamping")
		p.processor.SetProgress(func(labeler.FileResult) {
			bar.Increment()
		})
	} else {
		p.processor.SetProgress(func(fr labeler.FileResult) {
			name := filepath.Base(fr.SourcePath)
			switch {
			case fr.Err != nil:
				ui.ErrorMsg("%s: %v", name, fr.Err)
			case fr.Skipped:
				fmt.Println(ui.Dim("- " + name + " (" + fr.SkipReason + ")"))
			default:
				ui.SuccessMsg("%s -> %s", name, ui.Label(fr.Label))
			}
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := p.processor.Process(ctx, dir)
	if err != nil {
		return err
	}

	if barMode {
		for _, e := range result.Errors {
			ui.ErrorMsg("%v", e)
		}
	}
	printSummary(result)
	if result.Failed > 0 {
		return fmt.Errorf("%d photo(s) failed", result.Failed)
	}
	return nil
}

func printSummary(result *labeler.Result) {
	ui.Section("summary")
	if result.DryRun {
		ui.InfoMsg("would stamp: %d", result.Stamped)
	} else {
		ui.SuccessMsg("stamped: %d", result.Stamped)
	}
	if result.Skipped > 0 {
		ui.WarningMsg("skipped: %d", result.Skipped)
	}
	if result.Failed > 0 {
		ui.ErrorMsg("failed: %d", result.Failed)
	}
	if result.BytesWritten > 0 {
		ui.InfoMsg("written: %s in %s", ui.FormatBytes(result.BytesWritten), ui.FormatDuration(result.Duration))
	}
}
