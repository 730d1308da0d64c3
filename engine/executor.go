package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ============================================================================
// EXECUTOR — Filter Stage + Aggregation Stage
// ============================================================================
// Entry point: Execute(ctx, view, filters, opts...)
//
// Pipeline:
//   1. Apply filters → SubView (zero-copy)
//   2. Run the five aggregations on the filtered view
//   3. Return a Dashboard
//
// The whole pipeline re-runs for every parameter change. Nothing is cached
// and the source view is never mutated.
// ============================================================================

// ErrNilView is returned when Execute is called without a dataset.
var ErrNilView = errors.New("engine: nil order view")

const tracerName = "orderlens.engine"

// Execute filters view and computes every dashboard section.
// An empty filtered view is not an error: each section reports no data.
//
// Options:
//   - WithRFMTopN(n), WithSpendTopN(n), WithProductTopN(n) — table lengths
//   - WithCurrency(code, locale) — money formatting
//   - WithLogger(l) — destination for debug logs
func Execute(ctx context.Context, view OrderView, filters Filters, opts ...Option) (*Dashboard, error) {
	if view == nil {
		return nil, ErrNilView
	}
	cfg := applyOptions(opts)
	logger := cfg.logger()
	tracer := otel.Tracer(tracerName)

	ctx, span := tracer.Start(ctx, "engine.Execute",
		trace.WithAttributes(
			attribute.Int("rows.total", view.Len()),
			attribute.String("filter.dates", filters.Dates.String()),
			attribute.StringSlice("filter.regions", filters.Regions.Values()),
			attribute.StringSlice("filter.categories", filters.Categories.Values()),
		),
	)
	defer span.End()
	start := time.Now()

	// 1. Filter Stage
	filtered := ApplyFilters(view, filters)
	span.SetAttributes(attribute.Int("rows.filtered", filtered.Len()))
	logger.Debug("filter stage complete",
		slog.Int("rows", view.Len()),
		slog.Int("filtered", filtered.Len()),
	)

	d := &Dashboard{
		Filters:      filters,
		TotalRows:    view.Len(),
		FilteredRows: filtered.Len(),
		Currency:     cfg.CurrencyCode,
		Locale:       cfg.Locale,
	}

	// 2. Aggregation Stage, checking for cancellation between tables.
	stages := []struct {
		name string
		run  func()
	}{
		{"rfm", func() { d.RFM = ComputeRFM(filtered, opts...) }},
		{"spend", func() { d.Spend = ComputeSpend(filtered, opts...) }},
		{"cancellations", func() { d.Cancellations = ComputeCancellations(filtered) }},
		{"products", func() { d.Products = ComputeProductRevenue(filtered, opts...) }},
		{"monthly", func() { d.Monthly = ComputeMonthly(filtered) }},
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "context canceled")
			return nil, err
		}
		_, stageSpan := tracer.Start(ctx, "engine.aggregate."+stage.name)
		stage.run()
		stageSpan.End()
	}

	logger.Debug("dashboard computed",
		slog.Int("filtered", d.FilteredRows),
		slog.Int("customers", len(d.RFM.Customers)),
		slog.Int("months", len(d.Monthly.Months)),
		slog.Duration("elapsed", time.Since(start)),
	)
	span.SetStatus(codes.Ok, "")
	return d, nil
}
