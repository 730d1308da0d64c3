package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/spektr-org/orderlens/export"
	"github.com/spektr-org/orderlens/observability"
	"github.com/spektr-org/orderlens/report"
	"github.com/spektr-org/orderlens/server"
)

func newReportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard to the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), d)
		},
	}
}

func newExportCmd(c *cli) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard as xlsx, csv, json or png files",
		Example: `  orderlens export --format xlsx --out reports/
  orderlens export --format png --start 2017-01-01 --end 2017-12-31 --region SP`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			d, err := c.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			paths, err := export.WriteDir(out, f, d)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(export.FormatXLSX), "Output format: xlsx, csv, json, png")
	cmd.Flags().StringVar(&out, "out", "out", "Output directory")
	return cmd
}

func newFacetsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Print the dataset's filterable dimensions and date bounds as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := c.loadStore()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st.Describe())
		},
	}
}

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: c.cfg.SlogLevel()}))
			slog.SetDefault(logger)
			c.logger = logger

			st, err := c.loadStore()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
			srv := server.New(st, metrics, prometheus.DefaultGatherer,
				server.WithEngineOptions(c.cfg.EngineOptions()...),
				server.WithLogger(logger),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")
	return cmd
}
