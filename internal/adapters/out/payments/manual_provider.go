// Package payments provides PaymentProvider adapters.
package payments

import (
	"context"
	"sync"

	"orderflow/internal/core/domain/model/kernel"
)

// ManualProvider is an in-memory PaymentProvider. Settlements are recorded
// explicitly via MarkSettled; everything else reads as unsettled. Stands in
// for the payment collaborator in development and in tests.
type ManualProvider struct {
	mu      sync.RWMutex
	settled map[kernel.UUID]bool
}

// NewManualProvider creates an empty provider.
func NewManualProvider() *ManualProvider {
	return &ManualProvider{settled: make(map[kernel.UUID]bool)}
}

// MarkSettled records a settled payment for the order.
func (p *ManualProvider) MarkSettled(orderID kernel.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settled[orderID] = true
}

// IsSettled reports whether MarkSettled was called for the order.
func (p *ManualProvider) IsSettled(_ context.Context, orderID kernel.UUID) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settled[orderID], nil
}
