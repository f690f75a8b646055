package kernel

import (
	"strings"
	"unicode/utf8"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxIDLength is the longest identifier, in characters, that can be stored.
const MaxIDLength = 64

// OrderID identifies an order. It is either generated or supplied by the caller.
type OrderID struct {
	value string
}

// GenerateOrderID returns a new OrderID backed by a random UUID.
func GenerateOrderID() OrderID {
	return OrderID{value: uuid.NewString()}
}

func NewOrderID(value string) (OrderID, error) {
	if err := validateID("orderID", value); err != nil {
		return OrderID{}, err
	}
	return OrderID{value: value}, nil
}

func (id OrderID) String() string {
	return id.value
}

func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

func (id OrderID) Validate() error {
	if isBlank(id.value) {
		return errs.NewValueIsRequiredError("orderID")
	}
	return nil
}

// CustomerID references a customer owned by another bounded context.
type CustomerID struct {
	value string
}

func NewCustomerID(value string) (CustomerID, error) {
	if err := validateID("customerID", value); err != nil {
		return CustomerID{}, err
	}
	return CustomerID{value: value}, nil
}

func (id CustomerID) String() string {
	return id.value
}

func (id CustomerID) IsEqual(other CustomerID) bool {
	return id.value == other.value
}

func (id CustomerID) Validate() error {
	if isBlank(id.value) {
		return errs.NewValueIsRequiredError("customerID")
	}
	return nil
}

// ProductID references a catalog product.
type ProductID struct {
	value string
}

func NewProductID(value string) (ProductID, error) {
	if err := validateID("productID", value); err != nil {
		return ProductID{}, err
	}
	return ProductID{value: value}, nil
}

func (id ProductID) String() string {
	return id.value
}

func (id ProductID) IsEqual(other ProductID) bool {
	return id.value == other.value
}

func (id ProductID) Validate() error {
	if isBlank(id.value) {
		return errs.NewValueIsRequiredError("productID")
	}
	return nil
}

func validateID(paramName, value string) error {
	if isBlank(value) {
		return errs.NewValueIsRequiredError(paramName)
	}
	if n := utf8.RuneCountInString(value); n > MaxIDLength {
		return errs.NewValueIsOutOfRangeError(paramName+" length", n, 1, MaxIDLength)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
