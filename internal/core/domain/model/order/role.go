package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// ActorRole is the capacity in which a caller acts for a single transition
// request. It is not stored on the order; it is supplied per request and
// independently authenticated by the identity collaborator.
type ActorRole int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown ActorRole = iota

	// RoleCustomer is the end user who placed the order.
	RoleCustomer

	// RoleSeller is the restaurant fulfilling the order.
	RoleSeller

	// RoleCourier is the delivery person carrying the order.
	RoleCourier

	// RoleAdmin is marketplace staff with override authority.
	RoleAdmin

	// RoleSystem is an automated caller such as a payment webhook or a
	// scheduled sweep job.
	RoleSystem
)

func getRoleStrings() map[ActorRole]string {
	return map[ActorRole]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleSeller:   "seller",
		RoleCourier:  "courier",
		RoleAdmin:    "admin",
		RoleSystem:   "system",
	}
}

func getValidRoleStrings() map[ActorRole]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[ActorRole]string{
		RoleCustomer: "customer",
		RoleSeller:   "seller",
		RoleCourier:  "courier",
		RoleAdmin:    "admin",
		RoleSystem:   "system",
	}
}

// RoleFromString parses a canonical lowercase role name.
// Consolidates the role vocabulary in one place so callers never
// reimplement role mapping.
func RoleFromString(s string) (ActorRole, error) {
	for role, name := range getValidRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid actor role", s))
}

// Validate checks if the ActorRole value is valid.
func (r ActorRole) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid actor role", r))
	}
	return nil
}

// String returns the canonical lowercase name of the role.
// Returns "unknown" for invalid role values.
func (r ActorRole) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
