package engine

import "github.com/spektr-org/orderlens/store"

// ============================================================================
// ORDER VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns order data. It reads through this interface.
//
// Implementations:
//   *store.Store — the loaded dataset
//   SliceView    — wraps []store.Order (tests, ad-hoc callers)
//   SubView      — filtered subset (indices into parent, zero-copy)
// ============================================================================

// OrderView provides indexed access to order rows.
// The engine calls At in tight loops; implementations must be O(1).
type OrderView interface {
	Len() int
	At(index int) store.Order
}

var _ OrderView = (*store.Store)(nil)

// ============================================================================
// SLICE VIEW
// ============================================================================

// SliceView wraps a []store.Order slice as an OrderView.
type SliceView struct {
	orders []store.Order
}

// NewSliceView creates an OrderView over orders. The slice is not copied.
func NewSliceView(orders []store.Order) OrderView {
	return &SliceView{orders: orders}
}

func (v *SliceView) Len() int { return len(v.orders) }

func (v *SliceView) At(i int) store.Order {
	if i < 0 || i >= len(v.orders) {
		return store.Order{}
	}
	return v.orders[i]
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent OrderView.
// Holds indices into the parent; rows are not copied.
type SubView struct {
	parent  OrderView
	indices []int
}

func newSubView(parent OrderView, indices []int) OrderView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) At(i int) store.Order {
	if i < 0 || i >= len(v.indices) {
		return store.Order{}
	}
	return v.parent.At(v.indices[i])
}
