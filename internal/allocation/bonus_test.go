package allocation

import (
	"testing"

	"github.com/mega12/raffle-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeBonusThresholds(t *testing.T) {
	tiers := []models.BonusTier{
		{Quantity: 10, Boxes: 1},
		{Quantity: 50, Boxes: 5},
		{Quantity: 100, Boxes: 12},
	}

	cases := []struct {
		quantity int
		want     int
	}{
		{5, 0},
		{10, 1},
		{49, 1},
		{50, 5},
		{99, 5},
		{100, 12},
		{150, 12},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ComputeBonus(tc.quantity, tiers), "quantity %d", tc.quantity)
	}
}

func TestComputeBonusEmptyTiers(t *testing.T) {
	assert.Equal(t, 0, ComputeBonus(100, nil))
	assert.Equal(t, 0, ComputeBonus(100, []models.BonusTier{}))
}

func TestComputeBonusUnsortedInput(t *testing.T) {
	tiers := []models.BonusTier{
		{Quantity: 100, Boxes: 12},
		{Quantity: 10, Boxes: 1},
		{Quantity: 50, Boxes: 5},
	}
	assert.Equal(t, 5, ComputeBonus(60, tiers))
}

func TestComputeBonusEqualThresholdTieBreak(t *testing.T) {
	tiers := []models.BonusTier{
		{Quantity: 10, Boxes: 2},
		{Quantity: 10, Boxes: 7},
	}
	// Equal thresholds resolve to the larger box count.
	assert.Equal(t, 7, ComputeBonus(10, tiers))
	assert.Equal(t, 7, ComputeBonus(25, tiers))
}

func TestComputeBonusDoesNotMutateInput(t *testing.T) {
	tiers := []models.BonusTier{
		{Quantity: 10, Boxes: 1},
		{Quantity: 100, Boxes: 12},
	}
	ComputeBonus(50, tiers)
	assert.Equal(t, 10, tiers[0].Quantity)
	assert.Equal(t, 100, tiers[1].Quantity)
}
