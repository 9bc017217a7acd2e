package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all canonical status names", func(t *testing.T) {
		expected := map[string]order.Status{
			"pending_payment":  order.PendingPayment,
			"placed":           order.Placed,
			"confirmed":        order.Confirmed,
			"preparing":        order.Preparing,
			"ready":            order.Ready,
			"out_for_delivery": order.OutForDelivery,
			"delivered":        order.Delivered,
			"cancelled":        order.Cancelled,
		}

		for name, status := range expected {
			parsed, err := order.StatusFromString(name)
			require.NoError(t, err, name)
			assert.Equal(t, status, parsed, name)
		}
	})

	t.Run("should fail on unknown name", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "shipped")
	})

	t.Run("should fail on uppercase name", func(t *testing.T) {
		_, err := order.StatusFromString("Placed")

		require.Error(t, err)
	})

	t.Run("should fail on empty string", func(t *testing.T) {
		_, err := order.StatusFromString("")

		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all canonical statuses", func(t *testing.T) {
		statuses := []order.Status{
			order.PendingPayment, order.Placed, order.Confirmed, order.Preparing,
			order.Ready, order.OutForDelivery, order.Delivered, order.Cancelled,
		}

		for _, status := range statuses {
			assert.NoError(t, status.Validate(), status.String())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should round-trip through the canonical name", func(t *testing.T) {
		statuses := []order.Status{
			order.PendingPayment, order.Placed, order.Confirmed, order.Preparing,
			order.Ready, order.OutForDelivery, order.Delivered, order.Cancelled,
		}

		for _, status := range statuses {
			parsed, err := order.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should return unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("delivered and cancelled are terminal", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
	})

	t.Run("all other statuses are not terminal", func(t *testing.T) {
		for _, status := range []order.Status{
			order.PendingPayment, order.Placed, order.Confirmed,
			order.Preparing, order.Ready, order.OutForDelivery,
		} {
			assert.False(t, status.IsTerminal(), status.String())
		}
	})
}

func TestRoleFromString(t *testing.T) {
	t.Run("should parse all canonical role names", func(t *testing.T) {
		expected := map[string]order.ActorRole{
			"customer": order.RoleCustomer,
			"seller":   order.RoleSeller,
			"courier":  order.RoleCourier,
			"admin":    order.RoleAdmin,
			"system":   order.RoleSystem,
		}

		for name, role := range expected {
			parsed, err := order.RoleFromString(name)
			require.NoError(t, err, name)
			assert.Equal(t, role, parsed, name)
		}
	})

	t.Run("should fail on unknown name", func(t *testing.T) {
		_, err := order.RoleFromString("manager")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "manager")
	})
}

func TestActorRole_Validate(t *testing.T) {
	t.Run("should accept all canonical roles", func(t *testing.T) {
		roles := []order.ActorRole{
			order.RoleCustomer, order.RoleSeller, order.RoleCourier,
			order.RoleAdmin, order.RoleSystem,
		}

		for _, role := range roles {
			assert.NoError(t, role.Validate(), role.String())
		}
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		require.Error(t, order.RoleUnknown.Validate())
		require.Error(t, order.ActorRole(99).Validate())
	})
}
