package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery retrieves the status history of one order for
// timeline rendering and audits.
//
// When Timeline is set, entries sharing a status collapse to their first
// occurrence, which tolerates the synthetic entry seeded at order creation.
// The raw audit view keeps every entry.
type GetOrderHistoryQuery struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	timeline bool

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for one order's history.
// Set timeline to true for the collapsed customer-facing view.
func NewGetOrderHistoryQuery(orderID kernel.UUID, timeline bool) (GetOrderHistoryQuery, error) {
	q := GetOrderHistoryQuery{
		timeline: timeline,
		guard:    guard.NewConstructorGuard(),
	}

	if err := q.setOrderID(orderID); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose history is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Timeline reports whether the collapsed customer-facing view was requested.
func (q GetOrderHistoryQuery) Timeline() bool {
	return q.timeline
}

func (q *GetOrderHistoryQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}
