// Package labeler drives the per-photo pipeline: extract a date from the
// filename, render the label, stamp it onto a copy in the output folder.
// Files are processed sequentially; one photo failing never aborts the
// batch.
package labeler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Nomadcxx/photostamp/internal/age"
	"github.com/Nomadcxx/photostamp/internal/dateparse"
	"github.com/Nomadcxx/photostamp/internal/exifdate"
	"github.com/Nomadcxx/photostamp/internal/logging"
	"github.com/Nomadcxx/photostamp/internal/scan"
	"github.com/Nomadcxx/photostamp/internal/stamp"
)

// FileResult records what happened to a single photo.
type FileResult struct {
	SourcePath string
	OutputPath string
	Date       dateparse.Date
	Label      string
	Skipped    bool
	SkipReason string
	Err        error
}

// Result aggregates a batch run. Under DryRun, Stamped counts photos that
// would have been written.
type Result struct {
	DryRun       bool
	Stamped      int
	Skipped      int
	Failed       int
	BytesWritten int64
	Duration     time.Duration
	Files        []FileResult
	Errors       []error
}

// ProgressFunc is called after each photo is handled.
type ProgressFunc func(FileResult)

// Processor runs the stamping pipeline over directories of photos.
type Processor struct {
	labeler      age.Labeler
	stamper      *stamp.Stamper
	position     stamp.Position
	log          *logging.Logger
	dryRun       bool
	exifFallback bool
	overwrite    bool
	outputDir    string
	onProgress   ProgressFunc
}

// Option configures a Processor.
type Option func(*Processor)

// WithDryRun previews the batch without writing any files.
func WithDryRun(dryRun bool) Option {
	return func(p *Processor) { p.dryRun = dryRun }
}

// WithEXIFFallback reads the EXIF capture date when the filename has none.
func WithEXIFFallback(enabled bool) Option {
	return func(p *Processor) { p.exifFallback = enabled }
}

// WithOverwrite controls re-stamping files already in the output folder.
func WithOverwrite(overwrite bool) Option {
	return func(p *Processor) { p.overwrite = overwrite }
}

// WithOutputDir overrides the default <input>/output destination.
func WithOutputDir(dir string) Option {
	return func(p *Processor) { p.outputDir = dir }
}

// WithLogger sets the logger (default: none).
func WithLogger(log *logging.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// WithProgress registers a per-file progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Processor) { p.onProgress = fn }
}

// SetProgress replaces the per-file progress callback after construction.
func (p *Processor) SetProgress(fn ProgressFunc) {
	p.onProgress = fn
}

// New creates a Processor that renders labels with labeler and draws them
// at pos.
func New(labeler age.Labeler, stamper *stamp.Stamper, pos stamp.Position, options ...Option) *Processor {
	p := &Processor{
		labeler:   labeler,
		stamper:   stamper,
		position:  pos,
		log:       logging.Nop(),
		overwrite: true,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Process stamps every recognized photo directly inside dir. The returned
// error covers setup problems only (unreadable directory, unwritable
// output); per-file failures land in Result.Errors.
func (p *Processor) Process(ctx context.Context, dir string) (*Result, error) {
	start := time.Now()

	files, err := scan.Images(dir)
	if err != nil {
		return nil, err
	}

	outDir := p.outputDir
	if !p.dryRun {
		outDir, err = scan.EnsureOutputDir(dir, p.outputDir)
		if err != nil {
			return nil, err
		}
	} else if outDir == "" {
		outDir = filepath.Join(dir, scan.DefaultOutputDirName)
	}

	result := &Result{DryRun: p.dryRun}
	for _, file := range files {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		fr := p.processFile(file, outDir)
		result.record(fr)
		if p.onProgress != nil {
			p.onProgress(fr)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// ProcessFile runs the pipeline for one photo, writing next to outDir.
// Used by watch mode, where files arrive one at a time.
func (p *Processor) ProcessFile(path, outDir string) FileResult {
	return p.processFile(path, outDir)
}

func (p *Processor) processFile(path, outDir string) FileResult {
	name := filepath.Base(path)
	fr := FileResult{SourcePath: path}

	date, ok := dateparse.Extract(name)
	if !ok && p.exifFallback {
		date, ok = exifdate.ReadDate(path)
		if ok {
			p.log.Debug("labeler", "date from EXIF", logging.F("file", name), logging.F("date", date))
		}
	}
	if !ok {
		fr.Skipped = true
		fr.SkipReason = "no date in filename"
		p.log.Info("labeler", "skipped", logging.F("file", name), logging.F("reason", fr.SkipReason))
		return fr
	}

	fr.Date = date
	fr.Label = p.labeler.Label(date)
	fr.OutputPath = filepath.Join(outDir, stamp.OutputName(name))

	if !p.overwrite {
		if _, err := os.Stat(fr.OutputPath); err == nil {
			fr.Skipped = true
			fr.SkipReason = "output exists"
			return fr
		}
	}

	if p.dryRun {
		return fr
	}

	if err := p.stamper.Stamp(path, fr.OutputPath, fr.Label, p.position); err != nil {
		fr.Err = fmt.Errorf("%s: %w", name, err)
		p.log.Error("labeler", "stamp failed", err, logging.F("file", name))
		return fr
	}

	p.log.Info("labeler", "stamped", logging.F("file", name), logging.F("label", fr.Label))
	return fr
}

func (r *Result) record(fr FileResult) {
	r.Files = append(r.Files, fr)
	switch {
	case fr.Err != nil:
		r.Failed++
		r.Errors = append(r.Errors, fr.Err)
	case fr.Skipped:
		r.Skipped++
	default:
		r.Stamped++
		if info, err := os.Stat(fr.OutputPath); err == nil {
			r.BytesWritten += info.Size()
		}
	}
}
