package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every Money amount is kept at.
const MoneyScale int32 = 2

// MaxCurrencyLength bounds currency codes; ISO 4217 codes have three letters.
const MaxCurrencyLength = 8

// ErrMoneyIsNotConstructed is returned when a zero value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, NewMoneyFromString or ZeroMoney constructors")

// ErrCurrencyMismatch is the sentinel wrapped by CurrencyMismatchError.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// CurrencyMismatchError is returned when two Money values of different
// currencies are combined or compared.
type CurrencyMismatchError struct {
	Expected string
	Actual   string
}

// NewCurrencyMismatchError creates a CurrencyMismatchError.
func NewCurrencyMismatchError(expected, actual string) *CurrencyMismatchError {
	return &CurrencyMismatchError{
		Expected: expected,
		Actual:   actual,
	}
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", ErrCurrencyMismatch, e.Expected, e.Actual)
}

func (e *CurrencyMismatchError) Unwrap() error {
	return ErrCurrencyMismatch
}

func (e *CurrencyMismatchError) Is(target error) bool {
	return target == errs.ErrDomain
}

// Money is an immutable monetary amount in a single currency.
// Amounts are non-negative and always kept at MoneyScale fractional digits,
// rounded half-up at construction. The currency code is upper-cased.
//
// Example:
//
//	price, err := kernel.NewMoney(decimal.RequireFromString("100.005"), "cop")
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(price) // COP 100.01
type Money struct {
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates Money from an exact decimal amount and a currency code.
//
// Returns:
//   - errs.ValueIsInvalidError when amount is negative
//   - errs.ValueIsRequiredError when currency is blank
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// NewMoneyFromString parses amount as a decimal string, e.g. "1000.00".
func NewMoneyFromString(amount string, currency string) (Money, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(value, currency)
}

// ZeroMoney returns an amount of zero in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of m and other. Both must share the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}

	return m.with(m.amount.Add(other.amount)), nil
}

// Multiply scales the amount by factor, applying the same rounding as NewMoney.
// A negative factor is rejected because Money cannot be negative.
func (m Money) Multiply(factor int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("factor",
			fmt.Errorf("%d is negative", factor))
	}

	return m.with(m.amount.Mul(decimal.NewFromInt(int64(factor)))), nil
}

// IsGreaterThan reports whether m is strictly greater than other.
// Both must share the same currency.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}

	return m.amount.GreaterThan(other.amount), nil
}

// IsEqual compares amounts numerically, so 100.1 and 100.10 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String renders the money as "<CURRENCY> <amount>", for example "COP 1100.00".
// Numerically equal values render identically, which makes the result usable as a map key.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(MoneyScale))
}

func (m Money) sameCurrency(other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return NewCurrencyMismatchError(m.currency, other.currency)
	}
	return nil
}

func (m Money) with(amount decimal.Decimal) Money {
	return Money{
		amount:   amount.Round(MoneyScale),
		currency: m.currency,
		guard:    m.guard,
	}
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String()))
	}

	m.amount = amount.Round(MoneyScale)
	return nil
}

func (m *Money) setCurrency(currency string) error {
	normalized := strings.ToUpper(strings.TrimSpace(currency))
	if normalized == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if n := utf8.RuneCountInString(normalized); n > MaxCurrencyLength {
		return errs.NewValueIsOutOfRangeError("currency length", n, 1, MaxCurrencyLength)
	}

	m.currency = normalized
	return nil
}
