package http

import "time"

// Request and response bodies for the public API. Statuses and roles travel
// as their canonical lowercase snake_case strings everywhere.

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code     int      `json:"code"`
	Message  string   `json:"message"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// CreateOrderRequest creates a new order for a customer at a restaurant.
// UserID is taken from the authenticated actor for customers and from the
// body for admin and system callers.
type CreateOrderRequest struct {
	UserID          string `json:"user_id,omitempty"`
	RestaurantID    string `json:"restaurant_id"`
	AwaitingPayment bool   `json:"awaiting_payment"`
}

// CreateOrderResponse returns the identifier of the created order.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// TransitionRequest asks to move an order to a new status.
// ExpectedStatus optionally carries the status the caller last observed;
// a mismatch with the current status fails the request with a conflict.
type TransitionRequest struct {
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	ExpectedStatus string `json:"expected_status,omitempty"`
}

// TransitionResponse reports the executed transition.
type TransitionResponse struct {
	OrderID   string   `json:"order_id"`
	OldStatus string   `json:"old_status"`
	NewStatus string   `json:"new_status"`
	Warnings  []string `json:"warnings,omitempty"`
}

// PreviewRequest asks whether a transition would be legal for the
// authenticated actor's role, without touching any order.
type PreviewRequest struct {
	CurrentStatus   string `json:"current_status"`
	RequestedStatus string `json:"requested_status"`
	Reason          string `json:"reason,omitempty"`
}

// PreviewResponse reports the validator's verdict and the full set of
// statuses reachable from the current one for this role. UIs use it to
// enable or gray out action buttons.
type PreviewResponse struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	AllowedNext []string `json:"allowed_next"`
}

// HistoryEntryResponse is one rendered history entry.
// ActorID is empty for system-initiated transitions.
type HistoryEntryResponse struct {
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
	ActorID    string    `json:"actor_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// ActiveOrderResponse is one active order on a dispatch board.
type ActiveOrderResponse struct {
	OrderID      string `json:"order_id"`
	Status       string `json:"status"`
	RestaurantID string `json:"restaurant_id"`
	CourierID    string `json:"courier_id,omitempty"`
}
