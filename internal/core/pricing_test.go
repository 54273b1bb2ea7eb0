package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-core/internal/core"
)

func TestFinalPriceCents(t *testing.T) {
	tests := []struct {
		name      string
		baseCents int64
		premium   float64
		want      int64
	}{
		{"fifty percent premium", 10000, 50, 15000},
		{"no premium", 10000, 0, 10000},
		{"full discount", 10000, -100, 0},
		{"zero base", 0, 50, 0},
		{"fractional premium rounds", 999, 7.5, 1074}, // 999 * 1.075 = 1073.925
		{"half rounds up to even", 300, 0.5, 302},  // 301.5 -> 302
		{"half rounds down to even", 100, 0.5, 100}, // 100.5 -> 100
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.FinalPriceCents(tt.baseCents, tt.premium)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinalPriceCentsDeterministic(t *testing.T) {
	first, err := core.FinalPriceCents(12345, 33.3)
	require.NoError(t, err)
	second, err := core.FinalPriceCents(12345, 33.3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFinalPriceCentsValidation(t *testing.T) {
	_, err := core.FinalPriceCents(-1, 10)
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = core.FinalPriceCents(100, -100.01)
	assert.ErrorIs(t, err, core.ErrValidation)
}
