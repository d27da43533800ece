package service

import (
	"testing"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
)

func planTotals(lines []PlanLine) (pieces int, cost float64) {
	for _, l := range lines {
		pieces += l.Units * l.TierQty
		cost += l.TotalPrice
	}
	return pieces, cost
}

func TestPlanExactCoverage(t *testing.T) {
	tiers := []entity.PriceTier{
		{Seq: 1, Qty: 10, Price: 5},
		{Seq: 2, Qty: 3, Price: 2},
	}
	lines := Plan(0, 23, tiers)
	if lines == nil {
		t.Fatal("expected plan lines, got nil")
	}

	pieces, cost := planTotals(lines)
	if pieces != 23 {
		t.Errorf("expected exactly 23 pieces, got %d", pieces)
	}
	// 2×10 + 1×3 = 23, 成本 2×5 + 1×2 = 12
	if cost != 12 {
		t.Errorf("expected cost 12, got %v", cost)
	}
	if lines[0].TierQty != 10 || lines[0].Units != 2 {
		t.Errorf("expected largest tier first (10×2), got %+v", lines[0])
	}
}

func TestPlanRemainderRoundsUp(t *testing.T) {
	tiers := []entity.PriceTier{
		{Seq: 1, Qty: 10, Price: 5},
		{Seq: 2, Qty: 3, Price: 2},
	}
	lines := Plan(0, 25, tiers)
	if lines == nil {
		t.Fatal("expected plan lines, got nil")
	}

	pieces, cost := planTotals(lines)
	// 2×10 = 20，剩5整体落最小档 ceil(5/3)=2×3 → 26件
	if pieces != 26 {
		t.Errorf("expected 26 pieces (over-buy to cover deficit), got %d", pieces)
	}
	if pieces < 25 {
		t.Errorf("plan must cover the deficit, got %d < 25", pieces)
	}
	if cost != 14 {
		t.Errorf("expected cost 14, got %v", cost)
	}

	// 余量必须合并成最小档的一行，而不是floor一行再补一行
	if len(lines) != 2 {
		t.Fatalf("expected 2 plan lines, got %d: %+v", len(lines), lines)
	}
	want := []PlanLine{
		{TierQty: 10, Units: 2, PricePerUnit: 5, TotalPrice: 10},
		{TierQty: 3, Units: 2, PricePerUnit: 2, TotalPrice: 4},
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: expected %+v, got %+v", i, w, lines[i])
		}
	}
}

func TestPlanSingleTierCeil(t *testing.T) {
	tiers := []entity.PriceTier{{Seq: 1, Qty: 4, Price: 3}}
	lines := Plan(10, 15, tiers)
	// 缺口5，单档4件 → ceil(5/4)=2次
	pieces, cost := planTotals(lines)
	if pieces != 8 {
		t.Errorf("expected 8 pieces, got %d", pieces)
	}
	if cost != 6 {
		t.Errorf("expected cost 6, got %v", cost)
	}
}

func TestPlanNoDeficit(t *testing.T) {
	tiers := []entity.PriceTier{{Seq: 1, Qty: 10, Price: 5}}
	if lines := Plan(20, 20, tiers); lines != nil {
		t.Errorf("expected nil for zero deficit, got %+v", lines)
	}
	if lines := Plan(30, 20, tiers); lines != nil {
		t.Errorf("expected nil for surplus stock, got %+v", lines)
	}
}

func TestPlanNoTiers(t *testing.T) {
	if lines := Plan(0, 10, nil); lines != nil {
		t.Errorf("expected nil without price tiers, got %+v", lines)
	}
	// 全部档位Qty为0等同于无档
	zeroTiers := []entity.PriceTier{{Seq: 1, Qty: 0, Price: 5}}
	if lines := Plan(0, 10, zeroTiers); lines != nil {
		t.Errorf("expected nil with only zero-qty tiers, got %+v", lines)
	}
}

func TestPlanSkipsZeroQtyTiers(t *testing.T) {
	tiers := []entity.PriceTier{
		{Seq: 1, Qty: 0, Price: 1},
		{Seq: 2, Qty: 5, Price: 4},
	}
	lines := Plan(0, 10, tiers)
	for _, l := range lines {
		if l.TierQty == 0 {
			t.Fatalf("plan used a zero-qty tier: %+v", l)
		}
	}
	pieces, _ := planTotals(lines)
	if pieces != 10 {
		t.Errorf("expected 10 pieces, got %d", pieces)
	}
}
