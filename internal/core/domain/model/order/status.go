package order

import (
	"fmt"

	"roodi/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
//
// The forward path is strictly linear:
//
//	Created → SearchingRider → RiderAssigned → ToMerchant → AtMerchant →
//	WaitingOrder → ToCustomer → AtCustomer → FinishingDelivery → Completed
//
// with a single shortcut from SearchingRider directly to ToMerchant, covering
// rider self-assignment flows that skip the explicit assignment acknowledgment
// (kept as-is pending product clarification). Every non-terminal state may also
// move to Canceled. Completed and Canceled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when a commerce converts a quote into an order.
	Created

	// SearchingRider means dispatch has opened and offers are being issued.
	SearchingRider

	// RiderAssigned means a rider accepted an offer and acknowledged the order.
	RiderAssigned

	// ToMerchant means the rider is on the way to the pickup point.
	ToMerchant

	// AtMerchant means the rider arrived at the pickup point.
	AtMerchant

	// WaitingOrder means the rider is waiting for the package to be handed over.
	WaitingOrder

	// ToCustomer means the rider is on the way to the delivery destination.
	ToCustomer

	// AtCustomer means the rider arrived at the delivery destination.
	AtCustomer

	// FinishingDelivery means handover/confirmation is in progress.
	FinishingDelivery

	// Completed is the terminal success state.
	Completed

	// Canceled is the terminal cancellation state.
	Canceled
)

// statusTransitions is the static adjacency table governing the lifecycle.
// Terminal states map to empty slices on purpose.
var statusTransitions = map[Status][]Status{
	Created:           {SearchingRider, Canceled},
	SearchingRider:    {RiderAssigned, ToMerchant, Canceled},
	RiderAssigned:     {ToMerchant, Canceled},
	ToMerchant:        {AtMerchant, Canceled},
	AtMerchant:        {WaitingOrder, Canceled},
	WaitingOrder:      {ToCustomer, Canceled},
	ToCustomer:        {AtCustomer, Canceled},
	AtCustomer:        {FinishingDelivery, Canceled},
	FinishingDelivery: {Completed, Canceled},
	Completed:         {},
	Canceled:          {},
}

var statusStrings = map[Status]string{
	Unknown:           "unknown",
	Created:           "created",
	SearchingRider:    "searching_rider",
	RiderAssigned:     "rider_assigned",
	ToMerchant:        "to_merchant",
	AtMerchant:        "at_merchant",
	WaitingOrder:      "waiting_order",
	ToCustomer:        "to_customer",
	AtCustomer:        "at_customer",
	FinishingDelivery: "finishing_delivery",
	Completed:         "completed",
	Canceled:          "canceled",
}

// StatusFromString parses the persisted/wire representation of a status.
func StatusFromString(value string) (Status, error) {
	for status, str := range statusStrings {
		if status != Unknown && str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"order status",
		fmt.Errorf("%q is not a valid status", value),
	)
}

// String returns the persisted snake_case name of the status.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := statusTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// IsTransitionAllowed reports whether from → to is in the adjacency table.
// It is a pure function: the caller is responsible for rejecting disallowed
// transitions before persisting any state mutation.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	for _, next := range allowed {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outbound transitions.
func (s Status) IsTerminal() bool {
	allowed, ok := statusTransitions[s]
	return ok && len(allowed) == 0
}

// RiderActiveStatuses returns the fixed set of non-terminal states in which a
// rider is considered actively engaged with one order. The dispatch layer uses
// it to enforce the at-most-one-active-order-per-rider rule.
func RiderActiveStatuses() []Status {
	return []Status{
		RiderAssigned,
		ToMerchant,
		AtMerchant,
		WaitingOrder,
		ToCustomer,
		AtCustomer,
		FinishingDelivery,
	}
}
