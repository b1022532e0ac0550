package order_test

import (
	"fmt"
	"testing"

	"roodi/internal/core/domain/model/order"
	"roodi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Created,
		order.SearchingRider,
		order.RiderAssigned,
		order.ToMerchant,
		order.AtMerchant,
		order.WaitingOrder,
		order.ToCustomer,
		order.AtCustomer,
		order.FinishingDelivery,
		order.Completed,
		order.Canceled,
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate every defined status", func(t *testing.T) {
		for _, status := range allStatuses() {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown and out-of-range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(12), order.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			})
		}
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip every defined status", func(t *testing.T) {
		for _, status := range allStatuses() {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown strings", func(t *testing.T) {
		for _, value := range []string{"", "unknown", "created ", "CREATED", "delivering"} {
			_, err := order.StatusFromString(value)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestIsTransitionAllowed(t *testing.T) {
	// The full transition table, stated explicitly. Any pair not listed here
	// must be rejected.
	allowed := map[order.Status][]order.Status{
		order.Created:           {order.SearchingRider, order.Canceled},
		order.SearchingRider:    {order.RiderAssigned, order.ToMerchant, order.Canceled},
		order.RiderAssigned:     {order.ToMerchant, order.Canceled},
		order.ToMerchant:        {order.AtMerchant, order.Canceled},
		order.AtMerchant:        {order.WaitingOrder, order.Canceled},
		order.WaitingOrder:      {order.ToCustomer, order.Canceled},
		order.ToCustomer:        {order.AtCustomer, order.Canceled},
		order.AtCustomer:        {order.FinishingDelivery, order.Canceled},
		order.FinishingDelivery: {order.Completed, order.Canceled},
		order.Completed:         {},
		order.Canceled:          {},
	}

	isListed := func(from, to order.Status) bool {
		for _, next := range allowed[from] {
			if next == to {
				return true
			}
		}
		return false
	}

	t.Run("should match the lifecycle table for every status pair", func(t *testing.T) {
		for _, from := range allStatuses() {
			for _, to := range allStatuses() {
				t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
					assert.Equal(t, isListed(from, to), order.IsTransitionAllowed(from, to))
				})
			}
		}
	})

	t.Run("should reject transitions from undefined statuses", func(t *testing.T) {
		assert.False(t, order.IsTransitionAllowed(order.Unknown, order.Created))
		assert.False(t, order.IsTransitionAllowed(order.Status(42), order.Canceled))
	})

	t.Run("should reject self transitions", func(t *testing.T) {
		for _, status := range allStatuses() {
			assert.False(t, order.IsTransitionAllowed(status, status), status.String())
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark only Completed and Canceled terminal", func(t *testing.T) {
		for _, status := range allStatuses() {
			expected := status == order.Completed || status == order.Canceled
			assert.Equal(t, expected, status.IsTerminal(), status.String())
		}
	})
}

func TestRiderActiveStatuses(t *testing.T) {
	t.Run("should cover exactly the assigned-through-finishing window", func(t *testing.T) {
		assert.Equal(t, []order.Status{
			order.RiderAssigned,
			order.ToMerchant,
			order.AtMerchant,
			order.WaitingOrder,
			order.ToCustomer,
			order.AtCustomer,
			order.FinishingDelivery,
		}, order.RiderActiveStatuses())
	})
}
