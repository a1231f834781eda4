package usecase

import (
	"testing"

	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
)

func TestAdjustPrice_CompoundingSteps(t *testing.T) {
	p := player.Player{
		Price:         10_000_000,
		SelectionRate: 0.25,
		TransfersIn:   40,
		TransfersOut:  10,
	}

	// 10,000,000 * 1.05 = 10,500,000; * 1.04 = 10,920,000; +100,000 goal.
	if got := AdjustPrice(p, 1); got != 11_020_000 {
		t.Fatalf("expected 11020000, got %d", got)
	}
}

func TestAdjustPrice_MidPopularityTier(t *testing.T) {
	p := player.Player{
		Price:         10_000_000,
		SelectionRate: 0.15,
	}

	if got := AdjustPrice(p, 0); got != 10_300_000 {
		t.Fatalf("expected 10300000, got %d", got)
	}
}

func TestAdjustPrice_NetOutflowDiscount(t *testing.T) {
	p := player.Player{
		Price:        10_000_000,
		TransfersIn:  5,
		TransfersOut: 9,
	}

	if got := AdjustPrice(p, 0); got != 9_700_000 {
		t.Fatalf("expected 9700000, got %d", got)
	}
}

func TestAdjustPrice_FlooredAtMinimum(t *testing.T) {
	p := player.Player{
		Price:        player.MinimumPrice,
		TransfersIn:  0,
		TransfersOut: 50,
	}

	if got := AdjustPrice(p, 0); got != player.MinimumPrice {
		t.Fatalf("expected floor %d, got %d", player.MinimumPrice, got)
	}
}

func TestAdjustPrice_RoundsDown(t *testing.T) {
	p := player.Player{
		Price:         10_000_001,
		SelectionRate: 0.25,
	}

	// 10,000,001 * 1.05 = 10,500,001.05, floored.
	if got := AdjustPrice(p, 0); got != 10_500_001 {
		t.Fatalf("expected 10500001, got %d", got)
	}
}

func TestAdjustPrice_NoSignalsNoChange(t *testing.T) {
	p := player.Player{Price: 8_000_000, SelectionRate: 0.05}

	if got := AdjustPrice(p, 0); got != 8_000_000 {
		t.Fatalf("expected unchanged price, got %d", got)
	}
}
