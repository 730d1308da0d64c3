// Package store holds the order dataset in memory.
//
// A Store is built once (from a file or from a slice in tests) and never
// changes afterwards. Readers get copies of rows, never references into the
// backing slice, so any number of dashboard passes can share one Store.
package store

import (
	"sort"
	"time"

	"github.com/spektr-org/orderlens/schema"
)

// Order is one line item of a pre-joined order export.
// Nullable text columns hold "" for null; a null timestamp is the zero time.
type Order struct {
	OrderID          string    `json:"order_id"`
	CustomerUniqueID string    `json:"customer_unique_id"`
	CustomerState    string    `json:"customer_state,omitempty"`
	ProductCategory  string    `json:"product_category,omitempty"`
	PurchasedAt      time.Time `json:"order_purchase_timestamp"`
	OrderStatus      string    `json:"order_status"`
	TotalOrderValue  float64   `json:"total_order_value"`
	Price            float64   `json:"price"`
}

// HasTimestamp reports whether the purchase timestamp is present.
func (o Order) HasTimestamp() bool { return !o.PurchasedAt.IsZero() }

// Store is the immutable Record Store.
type Store struct {
	orders []Order
	source string
}

// New builds a Store from orders. The slice is copied.
func New(orders []Order) *Store {
	return newStore(append([]Order(nil), orders...), "memory")
}

func newStore(orders []Order, source string) *Store {
	return &Store{orders: orders, source: source}
}

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.orders) }

// At returns a copy of row i. Out-of-range indices return the zero Order.
func (s *Store) At(i int) Order {
	if i < 0 || i >= len(s.orders) {
		return Order{}
	}
	return s.orders[i]
}

// Source names where the rows came from (a file path or "memory").
func (s *Store) Source() string { return s.source }

// ============================================================================
// FACETS — filter choices offered to the presentation layer
// ============================================================================

// Describe summarises the dataset: sorted distinct regions and categories
// plus the purchase date bounds. The default dashboard filter spans
// MinDate..MaxDate with no region or category restriction.
func (s *Store) Describe() schema.Config {
	regions := make(map[string]bool)
	categories := make(map[string]bool)
	statuses := make(map[string]bool)
	var minTS, maxTS time.Time

	for _, o := range s.orders {
		if o.CustomerState != "" {
			regions[o.CustomerState] = true
		}
		if o.ProductCategory != "" {
			categories[o.ProductCategory] = true
		}
		if o.OrderStatus != "" {
			statuses[o.OrderStatus] = true
		}
		if !o.HasTimestamp() {
			continue
		}
		if minTS.IsZero() || o.PurchasedAt.Before(minTS) {
			minTS = o.PurchasedAt
		}
		if o.PurchasedAt.After(maxTS) {
			maxTS = o.PurchasedAt
		}
	}

	cfg := schema.Config{
		Name:           "E-Commerce Orders",
		Description:    "One row per order line item",
		RowCount:       len(s.orders),
		DiscoveredFrom: s.source,
		Dimensions: []schema.DimensionMeta{
			nullable(schema.DefaultDimension(schema.ColCustomerState, sortedKeys(regions))),
			nullable(schema.DefaultDimension(schema.ColProductCategory, sortedKeys(categories))),
			schema.DefaultDimension(schema.ColOrderStatus, sortedKeys(statuses)),
			{
				Key:         schema.ColPurchasedAt,
				DisplayName: "Order Purchase Timestamp",
				Filterable:  true,
				IsTemporal:  true,
			},
		},
		Measures: []schema.MeasureMeta{
			schema.DefaultMeasure(schema.ColTotalOrderValue, "Order total, repeated on every line item of the order"),
			schema.DefaultMeasure(schema.ColPrice, "Line item price"),
		},
	}
	if !minTS.IsZero() {
		cfg.MinDate = minTS.Format("2006-01-02")
		cfg.MaxDate = maxTS.Format("2006-01-02")
	}
	return cfg
}

func nullable(d schema.DimensionMeta) schema.DimensionMeta {
	d.Nullable = true
	return d
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
