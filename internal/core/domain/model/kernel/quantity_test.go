package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

func TestNewQuantity(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "one unit", value: 1},
		{name: "many units", value: 250},
		{name: "zero is rejected", value: 0, wantErr: true},
		{name: "negative is rejected", value: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := kernel.NewQuantity(tt.value)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			require.NoError(t, q.Validate())
			assert.Equal(t, tt.value, q.Value())
		})
	}
}

func TestQuantity_IsEqual(t *testing.T) {
	a, err := kernel.NewQuantity(2)
	require.NoError(t, err)
	b, err := kernel.NewQuantity(2)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.Equal(t, "2", a.String())
}

func TestQuantity_ZeroValueIsInvalid(t *testing.T) {
	var q kernel.Quantity

	require.ErrorIs(t, q.Validate(), kernel.ErrQuantityIsNotConstructed)
}
