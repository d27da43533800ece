// Package sheet 保留旧电子表格的固定列布局，仅用于xlsx导入导出的边界转换。
// 列位置即含义（旧系统按整数偏移读写），这里集中成具名常量，存储层不感知。
package sheet

import (
	"fmt"
	"strconv"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
)

// ITEMLOG列布局
const (
	itemColID = iota
	itemColName
	itemColCategory
	itemColCurrentStock
	itemColLimit
	itemColTargetStock
	itemColImage
	itemColCount
)

// LOG列布局：ID、时间戳、邮箱、部门，之后10组名称/数量，最后状态
const (
	logColID = iota
	logColTimestamp
	logColEmail
	logColDepartment
	logColFirstItem
	logColStatus = logColFirstItem + 2*entity.MaxOrderItems
	logColCount  = logColStatus + 1
)

// PRICESTOCK列布局：ID、基础价，之后5组档位数量/档位价
const (
	priceColID = iota
	priceColBasePrice
	priceColFirstTier
	priceColCount = priceColFirstTier + 2*entity.MaxPriceTiers
)

// ItemHeader ITEMLOG表头
func ItemHeader() []string {
	return []string{"ID", "NAME", "CATEGORY", "CURRENT", "LIMIT", "TARGET STOCK", "IMAGE"}
}

// ItemToRow 品目转固定列行
func ItemToRow(item *entity.Item) []string {
	row := make([]string, itemColCount)
	row[itemColID] = item.ID
	row[itemColName] = item.Name
	row[itemColCategory] = item.Category
	row[itemColCurrentStock] = strconv.Itoa(item.CurrentStock)
	row[itemColLimit] = strconv.Itoa(item.OrderLimit)
	row[itemColTargetStock] = strconv.Itoa(item.TargetStock)
	row[itemColImage] = item.ImageURL
	return row
}

// ItemFromRow 固定列行转品目。空数字列按0处理（旧表常见留空）。
func ItemFromRow(row []string) (*entity.Item, error) {
	if len(row) < itemColImage {
		return nil, fmt.Errorf("item row too short: %d columns", len(row))
	}
	cell := func(col int) string {
		if col < len(row) {
			return row[col]
		}
		return ""
	}
	current, err := cellInt(cell(itemColCurrentStock))
	if err != nil {
		return nil, fmt.Errorf("column CURRENT: %w", err)
	}
	limit, err := cellInt(cell(itemColLimit))
	if err != nil {
		return nil, fmt.Errorf("column LIMIT: %w", err)
	}
	target, err := cellInt(cell(itemColTargetStock))
	if err != nil {
		return nil, fmt.Errorf("column TARGET STOCK: %w", err)
	}
	return &entity.Item{
		ID:           cell(itemColID),
		Name:         cell(itemColName),
		Category:     cell(itemColCategory),
		CurrentStock: current,
		OrderLimit:   limit,
		TargetStock:  target,
		ImageURL:     cell(itemColImage),
	}, nil
}

// OrderHeader LOG表头
func OrderHeader() []string {
	header := []string{"ID", "TIMESTAMP", "EMAIL", "DEPARTMENT"}
	for i := 1; i <= entity.MaxOrderItems; i++ {
		header = append(header, fmt.Sprintf("ITEM %d", i), fmt.Sprintf("QTY %d", i))
	}
	return append(header, "STATUS")
}

// OrderToRow 订单转固定列行，不足10行项的列留空
func OrderToRow(order *entity.Order) []string {
	row := make([]string, logColCount)
	row[logColID] = strconv.FormatUint(uint64(order.ID), 10)
	row[logColTimestamp] = order.Timestamp
	row[logColEmail] = order.Email
	row[logColDepartment] = order.Department
	for i, item := range order.Items {
		if i >= entity.MaxOrderItems {
			break
		}
		row[logColFirstItem+2*i] = item.ItemName
		row[logColFirstItem+2*i+1] = strconv.Itoa(item.Quantity)
	}
	row[logColStatus] = order.Status
	return row
}

// PriceHeader PRICESTOCK表头
func PriceHeader() []string {
	header := []string{"ID", "BASE PRICE"}
	for i := 1; i <= entity.MaxPriceTiers; i++ {
		header = append(header, fmt.Sprintf("TIER %d QTY", i), fmt.Sprintf("TIER %d PRICE", i))
	}
	return header
}

// PriceToRow 价格与档位转固定列行，未配置的档位留空
func PriceToRow(ps *entity.PriceStock) []string {
	row := make([]string, priceColCount)
	row[priceColID] = ps.ItemID
	row[priceColBasePrice] = strconv.FormatFloat(ps.BasePrice, 'f', 2, 64)
	for _, t := range ps.Tiers {
		if t.Seq < 1 || t.Seq > entity.MaxPriceTiers {
			continue
		}
		base := priceColFirstTier + 2*(t.Seq-1)
		row[base] = strconv.Itoa(t.Qty)
		row[base+1] = strconv.FormatFloat(t.Price, 'f', 2, 64)
	}
	return row
}

func cellInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
