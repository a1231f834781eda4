package usecase

import (
	"math"

	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
)

const goalPriceBump int64 = 100_000

// AdjustPrice recomputes a player's market price from popularity, transfer
// flow and current-cycle goals. Percentage steps compound sequentially: the
// popularity adjustment applies to the original price and the transfer
// adjustment applies to that intermediate result. The final value is rounded
// down and floored at the league minimum.
func AdjustPrice(p player.Player, cycleGoals int) int64 {
	price := float64(p.Price)

	switch {
	case p.SelectionRate > 0.20:
		price *= 1.05
	case p.SelectionRate > 0.10:
		price *= 1.03
	}

	switch {
	case p.TransfersIn > p.TransfersOut:
		price *= 1.04
	case p.TransfersOut > p.TransfersIn:
		price *= 0.97
	}

	adjusted := int64(math.Floor(price))
	if cycleGoals > 0 {
		adjusted += int64(cycleGoals) * goalPriceBump
	}

	if adjusted < player.MinimumPrice {
		return player.MinimumPrice
	}
	return adjusted
}
