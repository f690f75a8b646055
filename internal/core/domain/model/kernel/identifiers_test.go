package kernel_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

func TestNewOrderID(t *testing.T) {
	t.Run("keeps the supplied value", func(t *testing.T) {
		id, err := kernel.NewOrderID("order-1")

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, "order-1", id.String())
	})

	for _, blank := range []string{"", "  ", "\t\n"} {
		t.Run("rejects blank value "+strconv.Quote(blank), func(t *testing.T) {
			_, err := kernel.NewOrderID(blank)

			require.ErrorIs(t, err, errs.ErrValueIsRequired)
		})
	}
}

func TestGenerateOrderID(t *testing.T) {
	first := kernel.GenerateOrderID()
	second := kernel.GenerateOrderID()

	require.NoError(t, first.Validate())
	assert.Len(t, first.String(), 36)
	assert.False(t, first.IsEqual(second))
}

func TestNewCustomerID(t *testing.T) {
	id, err := kernel.NewCustomerID("c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", id.String())

	other, err := kernel.NewCustomerID("c1")
	require.NoError(t, err)
	assert.True(t, id.IsEqual(other))

	_, err = kernel.NewCustomerID(" ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewProductID(t *testing.T) {
	id, err := kernel.NewProductID("p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", id.String())

	other, err := kernel.NewProductID("p2")
	require.NoError(t, err)
	assert.False(t, id.IsEqual(other))

	_, err = kernel.NewProductID("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestIdentifiers_ZeroValueIsInvalid(t *testing.T) {
	require.Error(t, kernel.OrderID{}.Validate())
	require.Error(t, kernel.CustomerID{}.Validate())
	require.Error(t, kernel.ProductID{}.Validate())
}

func TestIdentifiers_LengthLimit(t *testing.T) {
	atLimit := strings.Repeat("ñ", kernel.MaxIDLength)
	overLimit := strings.Repeat("x", kernel.MaxIDLength+1)

	constructors := map[string]func(string) error{
		"orderID": func(v string) error {
			_, err := kernel.NewOrderID(v)
			return err
		},
		"customerID": func(v string) error {
			_, err := kernel.NewCustomerID(v)
			return err
		},
		"productID": func(v string) error {
			_, err := kernel.NewProductID(v)
			return err
		},
	}

	for name, newID := range constructors {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, newID(atLimit))

			err := newID(overLimit)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.True(t, errs.IsDomainError(err))
			assert.Contains(t, err.Error(), name)
		})
	}
}
