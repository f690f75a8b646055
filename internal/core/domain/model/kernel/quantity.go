package kernel

import (
	"fmt"
	"strconv"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError("quantity must be created via NewQuantity")

// Quantity is a strictly positive number of units.
type Quantity struct {
	value int
	guard guard.ConstructorGuard
}

func NewQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", value))
	}

	return Quantity{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q Quantity) Value() int {
	return q.value
}

func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}

func (q Quantity) IsEqual(other Quantity) bool {
	return q.value == other.value
}

func (q Quantity) String() string {
	return strconv.Itoa(q.value)
}
