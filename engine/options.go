package engine

import "log/slog"

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute() and the Compute* stages
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	RFMTopN      int
	SpendTopN    int
	ProductTopN  int
	CurrencyCode string // ISO 4217, e.g. "BRL"
	Locale       string // BCP 47, e.g. "pt-BR"
	Logger       *slog.Logger
}

func (c *config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Defaults applied when no option overrides them.
const (
	DefaultRFMTopN     = 5
	DefaultSpendTopN   = 10
	DefaultProductTopN = 10
	DefaultCurrency    = "BRL"
	DefaultLocale      = "pt-BR"
)

// WithRFMTopN sets the length of the recency and frequency top lists.
func WithRFMTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.RFMTopN = n
		}
	}
}

// WithSpendTopN sets the length of the top-spenders table.
func WithSpendTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.SpendTopN = n
		}
	}
}

// WithProductTopN sets the length of both product revenue tables.
func WithProductTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.ProductTopN = n
		}
	}
}

// WithCurrency sets the currency code and locale used for monetary values.
// code: ISO 4217 (e.g., "BRL"); locale: BCP 47 (e.g., "pt-BR")
func WithCurrency(code, locale string) Option {
	return func(c *config) {
		if code != "" {
			c.CurrencyCode = code
		}
		if locale != "" {
			c.Locale = locale
		}
	}
}

// WithLogger routes engine debug logs to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.Logger = l
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		RFMTopN:      DefaultRFMTopN,
		SpendTopN:    DefaultSpendTopN,
		ProductTopN:  DefaultProductTopN,
		CurrencyCode: DefaultCurrency,
		Locale:       DefaultLocale,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
