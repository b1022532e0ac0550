package order

import (
	"fmt"

	"roodi/internal/pkg/errs"
)

// EventType is a rider telemetry event that drives a lifecycle transition.
type EventType string

const (
	EventHeadingToMerchant EventType = "heading_to_merchant"
	EventArrivedAtMerchant EventType = "arrived_at_merchant"
	EventWaitingOrder      EventType = "waiting_order"
	EventHeadingToCustomer EventType = "heading_to_customer"
	EventArrivedAtCustomer EventType = "arrived_at_customer"
	EventFinishingDelivery EventType = "finishing_delivery"
	EventDelivered         EventType = "delivered"
	EventCanceled          EventType = "canceled"
)

// eventStatuses maps each telemetry event to the status it drives the order
// into. Whether the transition is allowed from the order's current status is
// still decided by the lifecycle table.
var eventStatuses = map[EventType]Status{
	EventHeadingToMerchant: ToMerchant,
	EventArrivedAtMerchant: AtMerchant,
	EventWaitingOrder:      WaitingOrder,
	EventHeadingToCustomer: ToCustomer,
	EventArrivedAtCustomer: AtCustomer,
	EventFinishingDelivery: FinishingDelivery,
	EventDelivered:         Completed,
	EventCanceled:          Canceled,
}

// StatusForEvent returns the status the event drives the order into.
func StatusForEvent(event EventType) (Status, error) {
	status, ok := eventStatuses[event]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"event type",
			fmt.Errorf("%q is not a valid order event", string(event)),
		)
	}
	return status, nil
}
