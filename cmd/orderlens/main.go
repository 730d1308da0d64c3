package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/orderlens/config"
	"github.com/spektr-org/orderlens/engine"
	"github.com/spektr-org/orderlens/params"
	"github.com/spektr-org/orderlens/store"
)

// ============================================================================
// ORDERLENS CLI — E-commerce order dashboard
// ============================================================================

const version = "0.3.0"

func main() {
	c := &cli{}
	if err := c.execute(context.Background(), newRootCmd(c)); err != nil {
		os.Exit(1)
	}
}

// cli holds the flag values and the state shared by subcommands.
type cli struct {
	configPath string
	file       string
	request    params.Request

	cfg      config.Config
	logger   *slog.Logger
	shutdown func(context.Context) error
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:     "orderlens",
		Short:   "Customer and order analytics for e-commerce datasets",
		Version: version,
		Long: `orderlens loads an order dataset (CSV or XLSX) and computes an RFM
summary, top spenders, cancellations by region, product revenue and
monthly transaction counts for the selected dates, regions and categories.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	// ── Flags ─────────────────────────────────────────────────────────────
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&c.file, "file", "", "Order dataset (.csv or .xlsx); overrides data.path")
	pf.StringVar(&c.request.Start, "start", "", "First purchase day, YYYY-MM-DD (default: earliest in dataset)")
	pf.StringVar(&c.request.End, "end", "", "Last purchase day, YYYY-MM-DD (default: latest in dataset)")
	pf.StringSliceVar(&c.request.Regions, "region", nil, "Customer states to include (repeatable or comma-separated)")
	pf.StringSliceVar(&c.request.Categories, "category", nil, "Product categories to include (repeatable or comma-separated)")

	root.AddCommand(
		newReportCmd(c),
		newExportCmd(c),
		newFacetsCmd(c),
		newServeCmd(c),
	)
	return root
}

// execute runs root and then flushes tracing, whether or not the command failed.
func (c *cli) execute(ctx context.Context, root *cobra.Command) (err error) {
	defer func() {
		if c.shutdown == nil {
			return
		}
		if serr := c.shutdown(ctx); serr != nil && err == nil {
			err = fmt.Errorf("stop tracing: %w", serr)
		}
	}()
	return root.ExecuteContext(ctx)
}

// setup loads the config, installs the logger and starts tracing.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.file != "" {
		cfg.Data.Path = c.file
	}
	c.cfg = cfg

	c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(c.logger)

	if cfg.Tracing.Enabled {
		shutdown, err := setupTracing(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("start tracing: %w", err)
		}
		c.shutdown = shutdown
	}
	return nil
}

func (c *cli) loadStore() (*store.Store, error) {
	st, err := store.Load(c.cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	c.logger.Info("dataset loaded", "path", c.cfg.Data.Path, "rows", st.Len())
	return st, nil
}

// dashboard loads the dataset and computes the dashboard for the flag filters.
func (c *cli) dashboard(ctx context.Context) (*engine.Dashboard, error) {
	st, err := c.loadStore()
	if err != nil {
		return nil, err
	}
	filters, err := c.request.Filters(st.Describe())
	if err != nil {
		return nil, err
	}
	return engine.Execute(ctx, st, filters, c.cfg.EngineOptions()...)
}
