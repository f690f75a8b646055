package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// MaxProductNameLength is the longest product name, in characters, an item accepts.
const MaxProductNameLength = 255

// Item is one purchased line of an order. It is an immutable value object:
// two items are equal when all their fields are equal.
type Item struct {
	productID   kernel.ProductID
	productName string
	quantity    kernel.Quantity
	unitPrice   kernel.Money
	guard       guard.ConstructorGuard
}

// NewItem creates an order line. The product name must not be blank and every
// value object must have been built by its own constructor.
func NewItem(
	productID kernel.ProductID,
	productName string,
	quantity kernel.Quantity,
	unitPrice kernel.Money,
) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.ProductID {
	return i.productID
}

func (i Item) ProductName() string {
	return i.productName
}

func (i Item) Quantity() kernel.Quantity {
	return i.quantity
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i Item) Currency() string {
	return i.unitPrice.Currency()
}

// Subtotal returns unitPrice multiplied by quantity.
func (i Item) Subtotal() (kernel.Money, error) {
	if err := i.Validate(); err != nil {
		return kernel.Money{}, err
	}
	return i.unitPrice.Multiply(i.quantity.Value())
}

func (i Item) IsEqual(other Item) bool {
	return i.productID.IsEqual(other.productID) &&
		i.productName == other.productName &&
		i.quantity.IsEqual(other.quantity) &&
		i.unitPrice.IsEqual(other.unitPrice)
}

func (i Item) String() string {
	return fmt.Sprintf("Item(%s, %q, %s x %s)", i.productID, i.productName, i.quantity, i.unitPrice)
}

func (i *Item) setProductID(productID kernel.ProductID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setProductName(productName string) error {
	if strings.TrimSpace(productName) == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	if n := utf8.RuneCountInString(productName); n > MaxProductNameLength {
		return errs.NewValueIsOutOfRangeError("productName length", n, 1, MaxProductNameLength)
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}
