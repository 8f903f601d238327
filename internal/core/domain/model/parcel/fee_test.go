package parcel_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFee(t *testing.T) {
	t.Run("non-urgent 2kg parcel costs 90", func(t *testing.T) {
		fee, err := parcel.NewFee(2, false)
		require.NoError(t, err)

		assert.InDelta(t, 50.0, fee.Base(), 0.001)
		assert.InDelta(t, 40.0, fee.Weight(), 0.001)
		assert.InDelta(t, 0.0, fee.Urgent(), 0.001)
		assert.InDelta(t, 90.0, fee.Total(), 0.001)
		assert.False(t, fee.IsPaid())
	})

	t.Run("urgent surcharge is flat", func(t *testing.T) {
		fee, err := parcel.NewFee(2, true)
		require.NoError(t, err)

		assert.InDelta(t, 100.0, fee.Urgent(), 0.001)
		assert.InDelta(t, 190.0, fee.Total(), 0.001)
	})

	t.Run("total always equals the sum of components", func(t *testing.T) {
		for _, weight := range []float64{0.1, 1, 7.5, 50} {
			for _, urgent := range []bool{false, true} {
				fee, err := parcel.NewFee(weight, urgent)
				require.NoError(t, err)
				assert.InDelta(t, fee.Base()+fee.Weight()+fee.Urgent(), fee.Total(), 0.001)
			}
		}
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		_, err := parcel.NewFee(0, false)
		require.Error(t, err)
		_, err = parcel.NewFee(-1, false)
		require.Error(t, err)
	})
}

func TestRestoreFee(t *testing.T) {
	t.Run("preserves historical amounts", func(t *testing.T) {
		fee, err := parcel.RestoreFee(50, 40, 100, 190, true)
		require.NoError(t, err)
		assert.InDelta(t, 190.0, fee.Total(), 0.001)
		assert.True(t, fee.IsPaid())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := parcel.RestoreFee(-1, 40, 0, 39, false)
		require.Error(t, err)
	})
}
