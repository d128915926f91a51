// Package core has the session controller that keeps the linked views in
// sync with the filter state, and the executors behind each CLI command.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/motionlens/core/ingest"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/iocache"
	"github.com/huangsam/motionlens/internal/observability"
	"github.com/huangsam/motionlens/internal/outwriter"
	"github.com/huangsam/motionlens/internal/render"
	"github.com/huangsam/motionlens/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// OpenSession loads cfg.Source into a new ready session.
// The dataset cache is used when the global cache manager has a store.
func OpenSession(ctx context.Context, cfg *contract.Config, renderer contract.Renderer, recorder contract.Recorder) (*Session, error) {
	if cfg.Source == "" {
		return nil, errors.New("a data source path or URL is required")
	}
	start := time.Now()
	session := NewSession(cfg, renderer, recorder)
	if err := session.Load(ctx, ingest.NewSource(cfg.Source), iocache.Manager); err != nil {
		return session, err
	}
	if !shouldSuppressHeader(ctx) {
		domain, _ := session.Domain()
		contract.LogInfo("🔎 Loaded %d records from %s (%d activities, %d participants) in %v",
			domain.Records, cfg.Source, len(domain.Activities), len(domain.Participants), time.Since(start).Round(time.Millisecond))
	}
	return session, nil
}

// ExecuteDomain prints the selectable activities and participants of the dataset.
func ExecuteDomain(ctx context.Context, cfg *contract.Config) error {
	return withMetrics(cfg, func(recorder contract.Recorder) error {
		session, err := OpenSession(ctx, cfg, nil, recorder)
		if err != nil {
			return err
		}
		domain, err := session.Domain()
		if err != nil {
			return err
		}
		return outwriter.PrintDomain(domain, cfg)
	})
}

// ExecuteView returns an executor that prints the projection behind one view
// for the configured initial filters.
func ExecuteView(view schema.ViewKind) ExecutorFunc {
	return func(ctx context.Context, cfg *contract.Config) error {
		return withMetrics(cfg, func(recorder contract.Recorder) error {
			session, err := OpenSession(ctx, cfg, nil, recorder)
			if err != nil {
				return err
			}
			frame, err := session.Frame(view)
			if err != nil {
				return err
			}
			return printFrame(frame, cfg)
		})
	}
}

// printFrame dispatches a frame to the writer of its projection.
func printFrame(frame schema.ViewFrame, cfg *contract.Config) error {
	switch frame.View {
	case schema.HeatmapView, schema.LineView:
		return outwriter.PrintFlat(frame.View, frame.Flat, cfg)
	case schema.ClockView:
		return outwriter.PrintHourly(frame.Hourly, cfg)
	case schema.ChordView:
		return outwriter.PrintMatrix(frame.Matrix, cfg)
	}
	return fmt.Errorf("unknown view %q", frame.View)
}

// ExecuteRender draws every view as SVG into cfg.SVGDir.
func ExecuteRender(ctx context.Context, cfg *contract.Config) error {
	if cfg.SVGDir == "" {
		return errors.New("--svg-dir is required")
	}
	return withMetrics(cfg, func(recorder contract.Recorder) error {
		renderer, err := render.NewSVGRenderer(cfg.SVGDir, cfg.ChartWidth, cfg.ChartHeight, cfg.HeatmapColumns)
		if err != nil {
			return err
		}
		session, err := OpenSession(ctx, cfg, renderer, recorder)
		if err != nil {
			return err
		}
		for _, path := range renderer.Written() {
			contract.LogInfo("💾 Rendered %s", path)
		}
		return outwriter.PrintSummary(session.Summary(), cfg)
	})
}

// ExecuteReplay loads the dataset, dispatches every event of cfg.ScriptPath
// and prints one row per event. Views are rendered as SVG when cfg.SVGDir is set.
func ExecuteReplay(ctx context.Context, cfg *contract.Config) error {
	if cfg.ScriptPath == "" {
		return errors.New("--script is required")
	}
	script, err := LoadScript(cfg.ScriptPath)
	if err != nil {
		return err
	}
	return withMetrics(cfg, func(recorder contract.Recorder) error {
		var renderer contract.Renderer = render.Nop{}
		if cfg.SVGDir != "" {
			svg, err := render.NewSVGRenderer(cfg.SVGDir, cfg.ChartWidth, cfg.ChartHeight, cfg.HeatmapColumns)
			if err != nil {
				return err
			}
			renderer = svg
		}
		session, err := OpenSession(ctx, cfg, renderer, recorder)
		if err != nil {
			return err
		}
		return outwriter.PrintReplay(session.Replay(script), cfg)
	})
}

// ExecutePreprocess filters the accelerometer CSV behind cfg.Source and
// writes it with a motion_intensity column to cfg.OutputFile or stdout.
func ExecutePreprocess(ctx context.Context, cfg *contract.Config) error {
	if cfg.Source == "" {
		return errors.New("a data source path or URL is required")
	}
	in, err := ingest.NewSource(cfg.Source).Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", cfg.Source, err)
	}
	defer func() { _ = in.Close() }()

	out, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	if cfg.OutputFile != "" {
		defer func() { _ = out.Close() }()
	}

	summary, err := ingest.Preprocess(in, out, ingest.PreprocessOptions{
		Cutoff:     cfg.Cutoff,
		SampleRate: cfg.SampleRate,
		Order:      cfg.Order,
	})
	if err != nil {
		return err
	}
	contract.LogInfo("Preprocessed %d rows (%d dropped, %d written)", summary.RowsRead, summary.RowsDropped, summary.RowsWritten)
	return nil
}

// withMetrics runs fn with a recorder when a metrics file is configured and
// writes the file afterwards, even when fn fails.
func withMetrics(cfg *contract.Config, fn func(contract.Recorder) error) error {
	if cfg.MetricsFile == "" {
		return fn(nil)
	}
	metrics := observability.NewMetrics()
	runErr := fn(metrics)
	if err := metrics.WriteToFile(cfg.MetricsFile); err != nil {
		contract.LogWarn("Failed to write metrics file", err)
	}
	return runErr
}
