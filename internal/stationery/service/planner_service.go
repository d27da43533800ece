package service

import (
	"context"
	"sort"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"github.com/InfoRubix/stationery/internal/stationery/repository"
)

// PlannerService 低库存补货计划：按批量价格档贪心凑足目标库存
type PlannerService struct {
	itemRepo  *repository.ItemRepository
	priceRepo *repository.PriceRepository
}

func NewPlannerService(itemRepo *repository.ItemRepository, priceRepo *repository.PriceRepository) *PlannerService {
	return &PlannerService{itemRepo: itemRepo, priceRepo: priceRepo}
}

// PlanLine 一条采购建议：按tier_qty为单位买units次
type PlanLine struct {
	TierQty      int     `json:"tier_qty"`
	Units        int     `json:"units"`
	PricePerUnit float64 `json:"price_per_unit"`
	TotalPrice   float64 `json:"total_price"`
}

// ItemPlan 单个品目的补货计划
type ItemPlan struct {
	ItemID       string     `json:"item_id"`
	ItemName     string     `json:"item_name"`
	CurrentStock int        `json:"current_stock"`
	TargetStock  int        `json:"target_stock"`
	Deficit      int        `json:"deficit"`
	Lines        []PlanLine `json:"lines"`
	TotalUnits   int        `json:"total_units"`
	TotalCost    float64    `json:"total_cost"`
}

// Report 全量补货报告
type Report struct {
	Items     []ItemPlan `json:"items"`
	TotalCost float64    `json:"total_cost"`
}

// Plan 纯函数：大档优先贪心覆盖缺口，余量用最小档向上取整补足，
// 宁可超买也要达到目标库存。缺口≤0或没有价格档时返回nil（不进报告）。
func Plan(currentStock, targetStock int, tiers []entity.PriceTier) []PlanLine {
	deficit := targetStock - currentStock
	if deficit <= 0 || len(tiers) == 0 {
		return nil
	}

	sorted := make([]entity.PriceTier, 0, len(tiers))
	for _, t := range tiers {
		if t.Qty > 0 {
			sorted = append(sorted, t)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Qty > sorted[j].Qty })

	var lines []PlanLine
	remaining := deficit
	for _, tier := range sorted[:len(sorted)-1] {
		units := remaining / tier.Qty
		if units > 0 {
			lines = append(lines, PlanLine{
				TierQty:      tier.Qty,
				Units:        units,
				PricePerUnit: tier.Price,
				TotalPrice:   float64(units) * tier.Price,
			})
			remaining -= units * tier.Qty
		}
	}

	// 余量整体落到最小档，向上取整，只出一行
	if remaining > 0 {
		smallest := sorted[len(sorted)-1]
		units := (remaining + smallest.Qty - 1) / smallest.Qty
		lines = append(lines, PlanLine{
			TierQty:      smallest.Qty,
			Units:        units,
			PricePerUnit: smallest.Price,
			TotalPrice:   float64(units) * smallest.Price,
		})
	}

	return lines
}

// BuildReport 汇总所有低于目标库存且配置了价格档的品目
func (s *PlannerService) BuildReport(ctx context.Context) (*Report, error) {
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	prices, err := s.priceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	tiersByItem := make(map[string][]entity.PriceTier, len(prices))
	for _, ps := range prices {
		tiersByItem[ps.ItemID] = ps.Tiers
	}

	report := &Report{}
	for _, item := range items {
		lines := Plan(item.CurrentStock, item.TargetStock, tiersByItem[item.ID])
		if lines == nil {
			continue
		}
		plan := ItemPlan{
			ItemID:       item.ID,
			ItemName:     item.Name,
			CurrentStock: item.CurrentStock,
			TargetStock:  item.TargetStock,
			Deficit:      item.TargetStock - item.CurrentStock,
			Lines:        lines,
		}
		for _, line := range lines {
			plan.TotalUnits += line.Units * line.TierQty
			plan.TotalCost += line.TotalPrice
		}
		report.Items = append(report.Items, plan)
		report.TotalCost += plan.TotalCost
	}
	return report, nil
}
