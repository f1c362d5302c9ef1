package allocation

import (
	"sort"

	"github.com/mega12/raffle-backend/internal/models"
)

// ComputeBonus returns the bonus boxes awarded for buying quantity tickets
// under the given tier rules: the boxes of the highest-threshold tier whose
// threshold does not exceed quantity, or 0 when no tier qualifies. Tiers
// sharing a threshold are resolved in favor of the larger box count.
func ComputeBonus(quantity int, tiers []models.BonusTier) int {
	if len(tiers) == 0 {
		return 0
	}

	sorted := make([]models.BonusTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Quantity != sorted[j].Quantity {
			return sorted[i].Quantity > sorted[j].Quantity
		}
		return sorted[i].Boxes > sorted[j].Boxes
	})

	for _, tier := range sorted {
		if quantity >= tier.Quantity {
			return tier.Boxes
		}
	}
	return 0
}
