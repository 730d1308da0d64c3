// Package orderlens computes customer and order analytics for e-commerce
// datasets.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/orderlens/engine"
//	    "github.com/spektr-org/orderlens/store"
//	)
//
//	st, err := store.Load("all_data.csv")
//	dash, err := engine.Execute(ctx, st, engine.Filters{
//	    Dates:   engine.NewDateRange(start, end),
//	    Regions: engine.OneOf("SP", "RJ"),
//	}, engine.WithCurrency("BRL", "pt-BR"))
//
// The store holds the loaded orders, the engine filters them and computes
// the dashboard sections (RFM, spend, cancellations, product revenue and
// monthly counts), and the builders turn a dashboard into chart, table and
// metric views. The render, export, report and server packages present
// those views as PNG charts, files, terminal output and an HTTP API.
package orderlens
