// Package mortality wires the life-table loader, statistics, and chart
// renderer into a single-shot analysis run.
package mortality

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"lifespan/mortality/pkg/lifetable"
	"lifespan/mortality/pkg/plot"
	"lifespan/mortality/pkg/stats"
)

// optimisticOffset models deaths happening, on average, in the middle
// of the age year. Probably not quite true near the oldest ages, but a
// good enough approximation.
const optimisticOffset = 0.5

type Analyzer struct {
	Config Config
	Logger *zap.Logger
	Out    io.Writer // report destination, defaults to os.Stdout
}

// Run executes the whole pipeline: load, repair, summarize, report,
// render. Every error is fatal to the run; nothing is retried.
func (a *Analyzer) Run() error {
	out := a.Out
	if out == nil {
		out = os.Stdout
	}
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	table, err := a.loadTable(logger)
	if err != nil {
		return err
	}

	entries := table.Entries()
	summary, err := stats.Summarize(entries)
	if err != nil {
		return fmt.Errorf("summarizing %s: %w", a.Config.Data.Path, err)
	}
	logger.Debug("computed summary",
		zap.Float64("mean", summary.Mean),
		zap.Float64("stddev", summary.StdDev),
		zap.Int("n", summary.N),
	)

	var offset float64
	if a.Config.Analysis.Optimistic {
		offset = optimisticOffset
	}
	sample := stats.Expand(entries, offset)
	values, err := stats.Percentiles(sample, a.Config.Analysis.Percentiles)
	if err != nil {
		return fmt.Errorf("computing percentiles: %w", err)
	}

	marks := make([]plot.PercentileMark, len(values))
	for i, v := range values {
		marks[i] = plot.PercentileMark{Percentile: a.Config.Analysis.Percentiles[i], Age: v}
	}

	if err := writeReport(out, a.Config.Analysis.MinAge, marks); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if err := a.renderChart(entries, summary, marks); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote the death age distribution chart to %s\n", a.Config.Chart.Out)
	return nil
}

func (a *Analyzer) loadTable(logger *zap.Logger) (*lifetable.Table, error) {
	f, err := os.Open(a.Config.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}
	table, err := lifetable.Load(f, lifetable.LoadConfig{
		Columns: a.Config.Data.Columns,
		MinAge:  a.Config.Analysis.MinAge,
	})
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", a.Config.Data.Path, err)
	}
	logger.Debug("loaded life table",
		zap.Int("buckets", table.Len()),
		zap.Int("deaths", table.Total()),
	)
	if table.Total() == 0 {
		return nil, fmt.Errorf("filtering %s: %w", a.Config.Data.Path, stats.ErrEmptyDataset)
	}

	if err := table.Repair(lifetable.RepairConfig{
		TerminalAge: a.Config.Analysis.TerminalAge,
	}, logger); err != nil {
		return nil, fmt.Errorf("repairing life table: %w", err)
	}
	return table, nil
}

func (a *Analyzer) renderChart(entries []lifetable.Entry, summary stats.Summary, marks []plot.PercentileMark) error {
	f, err := os.Create(a.Config.Chart.Out)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	renderErr := plot.Render(f, plot.Input{
		Title:   fmt.Sprintf("%s from age %d", a.Config.Data.Path, a.Config.Analysis.MinAge),
		Entries: entries,
		Summary: summary,
		Marks:   marks,
		Overlay: a.Config.Chart.Distribution,
		Skew:    a.Config.Chart.Skew,
	})
	closeErr := f.Close()
	if renderErr != nil {
		return fmt.Errorf("rendering chart: %w", renderErr)
	}
	return closeErr
}
