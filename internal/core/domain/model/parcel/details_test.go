package parcel_test

import (
	"testing"

	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDetails(t *testing.T) {
	t.Run("should create valid details and normalise input", func(t *testing.T) {
		d, err := parcel.NewDetails("  Books ", 2.5, " 30 x 20 X 10 ", " 1 Pickup St ", "9 Delivery Ave")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, "Books", d.Description())
		assert.InDelta(t, 2.5, d.Weight(), 1e-9)
		assert.Equal(t, "30x20x10", d.Dimensions())
		assert.Equal(t, "1 Pickup St", d.PickupAddress())
		assert.Equal(t, "9 Delivery Ave", d.DeliveryAddress())
	})

	t.Run("should accept the weight bounds", func(t *testing.T) {
		for _, weight := range []float64{0.01, 999.99} {
			_, err := parcel.NewDetails("Books", weight, "1x1x1", "a", "b")
			require.NoError(t, err, weight)
		}
	})

	t.Run("should reject weights out of range", func(t *testing.T) {
		for _, weight := range []float64{0, -1, 1000} {
			_, err := parcel.NewDetails("Books", weight, "1x1x1", "a", "b")
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, weight)
		}
	})

	t.Run("should reject weights with more than two decimals", func(t *testing.T) {
		_, err := parcel.NewDetails("Books", 1.234, "1x1x1", "a", "b")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "two decimal places")
	})

	t.Run("should reject malformed dimensions", func(t *testing.T) {
		for _, dims := range []string{"30x20", "axbxc", "30x20x0", "30*20*10", "-1x2x3"} {
			_, err := parcel.NewDetails("Books", 1, dims, "a", "b")
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, dims)
		}
	})

	t.Run("should report every missing field at once", func(t *testing.T) {
		_, err := parcel.NewDetails(" ", 1, "", "", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "description")
		assert.Contains(t, err.Error(), "dimensions")
		assert.Contains(t, err.Error(), "pickup_address")
		assert.Contains(t, err.Error(), "delivery_address")
	})
}

func TestDetails_ZeroValue(t *testing.T) {
	var d parcel.Details

	assert.Equal(t, parcel.ErrDetailsAreNotConstructed, d.Validate())
}
