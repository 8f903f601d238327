package parcelrepo

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mappedParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)

	code, err := parcel.GenerateTrackingCode(now)
	require.NoError(t, err)
	sender, err := parcel.NewPartyInfo("Alice Sender", "alice@example.com", "+15550001111", "1 Sender St")
	require.NoError(t, err)
	receiver, err := parcel.NewPartyInfo("Bob Receiver", "bob@example.com", "+15550002222", "2 Receiver Ave")
	require.NoError(t, err)
	details, err := parcel.NewDetails(parcel.TypePackage, 2.0, "30x20x10", "books", nil)
	require.NoError(t, err)
	preferences, err := parcel.NewPreferences(nil, "leave at door", true, now)
	require.NoError(t, err)
	fee, err := parcel.NewFee(2.0, true)
	require.NoError(t, err)

	aggregate, err := parcel.NewParcel(
		kernel.NewUUID(), code,
		kernel.NewUUID(), sender,
		nil, receiver,
		details, preferences, fee, now,
	)
	require.NoError(t, err)

	return aggregate
}

func TestToDomain_RestoresFeeBreakdown(t *testing.T) {
	// Given
	aggregate := mappedParcel(t)
	dto := fromDomain(aggregate)

	// When
	restored, err := toDomain(dto)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 50.0, restored.Fee().Base())
	assert.Equal(t, 40.0, restored.Fee().Weight())
	assert.Equal(t, 100.0, restored.Fee().Urgent())
	assert.Equal(t, 190.0, restored.Fee().Total())
	assert.True(t, restored.Fee().IsPaid())
}

func TestToDomain_InvalidFee_ReturnsError(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(dto *ParcelDTO)
	}{
		{
			name:   "negative_base",
			mutate: func(dto *ParcelDTO) { dto.Fee.Base = -50.0 },
		},
		{
			name:   "negative_weight_component",
			mutate: func(dto *ParcelDTO) { dto.Fee.Weight = -1.0 },
		},
		{
			name:   "negative_total",
			mutate: func(dto *ParcelDTO) { dto.Fee.Total = -190.0 },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			dto := fromDomain(mappedParcel(t))
			tc.mutate(&dto)

			// When
			restored, err := toDomain(dto)

			// Then
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Nil(t, restored)
		})
	}
}
