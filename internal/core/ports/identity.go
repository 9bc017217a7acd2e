package ports

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// IdentityProvider resolves a caller's credential into an authenticated
// actor. The state machine trusts the result fully and never
// re-authenticates.
type IdentityProvider interface {
	// Authenticate resolves the credential into (actor id, actor role).
	Authenticate(credential string) (kernel.UUID, order.ActorRole, error)
}
