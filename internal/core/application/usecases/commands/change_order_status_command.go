package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// Transition names a lifecycle step that can be requested from outside.
// Cancellation has its own command because it carries a reason.
type Transition int

const (
	UnknownTransition Transition = iota
	Confirm
	StartPayment
	MarkPaid
	Ship
	Deliver
	MarkFailed
)

func getTransitionStrings() map[Transition]string {
	//nolint:exhaustive // UnknownTransition is intentionally excluded as it's invalid
	return map[Transition]string{
		Confirm:      "confirm",
		StartPayment: "start-payment",
		MarkPaid:     "pay",
		Ship:         "ship",
		Deliver:      "deliver",
		MarkFailed:   "fail",
	}
}

// ParseTransition converts an action name such as "start-payment" into a Transition.
func ParseTransition(value string) (Transition, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for transition, name := range getTransitionStrings() {
		if name == normalized {
			return transition, nil
		}
	}
	return UnknownTransition, errs.NewValueIsInvalidErrorWithCause("transition",
		fmt.Errorf("%q is not a valid transition", value))
}

func (t Transition) String() string {
	if str, ok := getTransitionStrings()[t]; ok {
		return str
	}
	return "unknown"
}

func (t Transition) Validate() error {
	if _, ok := getTransitionStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("transition", fmt.Errorf("%d is not a valid transition", t))
	}
	return nil
}

// ChangeOrderStatusCommand asks to move an existing order one step along its lifecycle.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.OrderID
	transition Transition

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(orderID kernel.OrderID, transition Transition) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTransition(transition),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Transition() Transition {
	return c.transition
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTransition(transition Transition) error {
	if err := transition.Validate(); err != nil {
		return err
	}
	c.transition = transition
	return nil
}
