package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"github.com/InfoRubix/stationery/internal/stationery/sheet"
)

// SheetService 按旧表格的固定列布局导入导出xlsx
type SheetService struct {
	itemRepo  *repository.ItemRepository
	orderRepo *repository.OrderRepository
	priceRepo *repository.PriceRepository
	items     *ItemService
	logger    *zap.Logger
}

func NewSheetService(repos *repository.Repositories, items *ItemService, logger *zap.Logger) *SheetService {
	return &SheetService{
		itemRepo:  repos.Item,
		orderRepo: repos.Order,
		priceRepo: repos.Price,
		items:     items,
		logger:    logger,
	}
}

// ImportResult 导入统计
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// ExportItems 导出全部品目为xlsx
func (s *SheetService) ExportItems(ctx context.Context) (*excelize.File, string, error) {
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list items: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "ITEMLOG"
	f.SetSheetName("Sheet1", sheetName)
	writeHeader(f, sheetName, sheet.ItemHeader())

	for rowIdx, item := range items {
		writeRow(f, sheetName, rowIdx+2, sheet.ItemToRow(&item))
	}

	colWidths := []float64{34, 24, 14, 10, 10, 14, 40}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	filename := fmt.Sprintf("items_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}

// ExportOrders 导出全部订单为xlsx，行项展开为10组固定名称/数量列
func (s *SheetService) ExportOrders(ctx context.Context) (*excelize.File, string, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list orders: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "LOG"
	f.SetSheetName("Sheet1", sheetName)
	writeHeader(f, sheetName, sheet.OrderHeader())

	for rowIdx, order := range orders {
		writeRow(f, sheetName, rowIdx+2, sheet.OrderToRow(&order))
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}

// ExportPrices 导出全部价格档位为xlsx
func (s *SheetService) ExportPrices(ctx context.Context) (*excelize.File, string, error) {
	prices, err := s.priceRepo.ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list prices: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "PRICESTOCK"
	f.SetSheetName("Sheet1", sheetName)
	writeHeader(f, sheetName, sheet.PriceHeader())

	for rowIdx, ps := range prices {
		writeRow(f, sheetName, rowIdx+2, sheet.PriceToRow(&ps))
	}

	filename := fmt.Sprintf("prices_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}

// ImportItems 从xlsx导入品目。带ID且已存在则更新，否则新建。
func (s *SheetService) ImportItems(ctx context.Context, f *excelize.File) (*ImportResult, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read excel: %w", err)
	}

	result := &ImportResult{}
	if len(rows) < 2 {
		return result, nil
	}

	for i, row := range rows[1:] { // 跳过表头
		item, err := sheet.ItemFromRow(row)
		if err != nil || item.Name == "" {
			result.Failed++
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing name", i+2))
			}
			continue
		}

		if item.ID != "" {
			if existing, err := s.itemRepo.GetByID(ctx, item.ID); err == nil && existing != nil {
				existing.Name = item.Name
				existing.Category = item.Category
				existing.CurrentStock = item.CurrentStock
				existing.OrderLimit = item.OrderLimit
				existing.TargetStock = item.TargetStock
				if item.ImageURL != "" {
					existing.ImageURL = item.ImageURL
				}
				if err := s.itemRepo.Update(ctx, existing); err != nil {
					result.Failed++
					result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
					continue
				}
				result.Updated++
				continue
			}
		}

		item.ID = uuid.New().String()[:32]
		if err := s.itemRepo.Create(ctx, item); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		result.Created++
	}

	s.items.invalidateCache(ctx)
	s.logger.Info("品目导入完成",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result, nil
}

func writeHeader(f *excelize.File, sheetName string, header []string) {
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, boldStyle)
	}
}

func writeRow(f *excelize.File, sheetName string, row int, values []string) {
	for i, v := range values {
		if v == "" {
			continue
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), v)
	}
}
