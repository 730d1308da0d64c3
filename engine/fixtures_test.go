package engine

import (
	"time"

	"github.com/spektr-org/orderlens/store"
)

// sampleOrders is a small pre-joined export:
//
//	A: a1 (two line items, Jan), a2 (canceled, Feb), a3 (Jun)
//	B: b1 (Feb, last second of the day)
//	C: c1 (canceled, no region or category, Mar)
//	D: x1 has no timestamp and never reaches the Aggregation Stage
func sampleOrders() []store.Order {
	return []store.Order{
		order("a1", "A", "SP", "toys", "2017-01-10 09:00:00", "delivered", 100, 60),
		order("a1", "A", "SP", "books", "2017-01-10 09:00:00", "delivered", 100, 40),
		order("a2", "A", "SP", "toys", "2017-02-05 18:30:00", "canceled", 50, 50),
		order("b1", "B", "RJ", "books", "2017-02-20 23:59:59", "delivered", 80, 80),
		order("c1", "C", "", "", "2017-03-01 00:00:00", "canceled", 30, 30),
		order("a3", "A", "SP", "toys", "2017-06-01 10:00:00", "delivered", 70, 70),
		order("x1", "D", "MG", "toys", "", "delivered", 10, 10),
	}
}

func sampleView() OrderView {
	return store.New(sampleOrders())
}

func order(id, customer, state, category, at, status string, total, price float64) store.Order {
	return store.Order{
		OrderID:          id,
		CustomerUniqueID: customer,
		CustomerState:    state,
		ProductCategory:  category,
		PurchasedAt:      ts(at),
		OrderStatus:      status,
		TotalOrderValue:  total,
		Price:            price,
	}
}

func ts(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func days(start, end string) DateRange {
	return NewDateRange(ts(start+" 00:00:00"), ts(end+" 00:00:00"))
}
