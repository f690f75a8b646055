package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> PaymentProcessing ──> Paid ──> Shipped ──> Delivered
//	   │            │                 │
//	   └────────────┴──> Cancelled    └──> Failed
//
// Delivered, Cancelled and Failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every new order.
	Pending

	// Confirmed means the customer accepted the order.
	Confirmed

	// PaymentProcessing means the payment has been started and not settled yet.
	PaymentProcessing

	// Paid means the payment succeeded.
	Paid

	// Shipped means the order left the warehouse.
	Shipped

	// Delivered is a final state: the customer received the order.
	Delivered

	// Cancelled is a final state reachable only before payment starts.
	Cancelled

	// Failed is a final state: the payment did not go through.
	Failed
)

// getStatusStrings returns the wire names of every valid status.
func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:           "PENDING",
		Confirmed:         "CONFIRMED",
		PaymentProcessing: "PAYMENT_PROCESSING",
		Paid:              "PAID",
		Shipped:           "SHIPPED",
		Delivered:         "DELIVERED",
		Cancelled:         "CANCELLED",
		Failed:            "FAILED",
	}
}

// getTransitions returns the allowed targets for every non-terminal status.
// Statuses missing from the map have no outgoing transitions.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no transitions
	return map[Status][]Status{
		Pending:           {Confirmed, Cancelled},
		Confirmed:         {PaymentProcessing, Cancelled},
		PaymentProcessing: {Paid, Failed},
		Paid:              {Shipped},
		Shipped:           {Delivered},
	}
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, PaymentProcessing, Paid, Shipped, Delivered, Cancelled, Failed}
}

// ParseStatus converts a wire name such as "PAYMENT_PROCESSING" into a Status.
// Matching ignores case and surrounding spaces.
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for status, name := range getStatusStrings() {
		if name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", value))
}

// Validate checks if the Status value is one of the eight lifecycle states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether moving from s to target is allowed.
// It has no side effects.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

// CanBeCancelled reports whether an order in s may still be cancelled.
// Cancellation only makes sense before payment starts.
func (s Status) CanBeCancelled() bool {
	return s == Pending || s == Confirmed
}
