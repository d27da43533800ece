package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExpenseService 采购报销台账：PENDING → SUCCESS / FAILED，
// 成功时复制到EXPENSELOG并按价格档倍数入库
type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
	priceRepo   *repository.PriceRepository
	stockSvc    *StockService
	logger      *zap.Logger
}

func NewExpenseService(expenseRepo *repository.ExpenseRepository, priceRepo *repository.PriceRepository, stockSvc *StockService, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		priceRepo:   priceRepo,
		stockSvc:    stockSvc,
		logger:      logger,
	}
}

type ExpenseLine struct {
	ItemName string  `json:"item_name" binding:"required"`
	Tier     string  `json:"tier"`
	Qty      int     `json:"qty" binding:"required,gt=0"`
	Price    float64 `json:"price" binding:"gte=0"`
	Total    float64 `json:"total" binding:"gte=0"`
}

type AddExpenseRequest struct {
	Items []ExpenseLine `json:"items" binding:"required,min=1,dive"`
}

// Add 每个行项一行PENDING记录，ID为 毫秒时间戳_行下标
func (s *ExpenseService) Add(ctx context.Context, req AddExpenseRequest) ([]entity.ExpenseRequest, error) {
	millis := time.Now().UnixMilli()
	reqs := make([]entity.ExpenseRequest, 0, len(req.Items))
	for i, line := range req.Items {
		reqs = append(reqs, entity.ExpenseRequest{
			ID:       fmt.Sprintf("%d_%d", millis, i),
			ItemName: line.ItemName,
			Tier:     line.Tier,
			Qty:      line.Qty,
			Price:    line.Price,
			Total:    line.Total,
			Status:   entity.ExpenseStatusPending,
		})
	}
	if err := s.expenseRepo.CreateBatch(ctx, reqs); err != nil {
		return nil, fmt.Errorf("create expense requests: %w", err)
	}
	return reqs, nil
}

// UpdateStatus SUCCESS时：复制到审计表、解析档位倍数、入库。
// 报销入库找不到品目只告警不报错，状态更新照常生效。
func (s *ExpenseService) UpdateStatus(ctx context.Context, id, status string) (*entity.ExpenseRequest, error) {
	if !entity.ValidExpenseStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	req, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("load expense %s: %w", id, err)
	}

	if err := s.expenseRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update expense %s: %w", id, err)
	}
	req.Status = status

	if status == entity.ExpenseStatusSuccess {
		log := &entity.ExpenseLog{
			RequestID: req.ID,
			ItemName:  req.ItemName,
			Tier:      req.Tier,
			Qty:       req.Qty,
			Price:     req.Price,
			Total:     req.Total,
		}
		if err := s.expenseRepo.AppendLog(ctx, log); err != nil {
			s.logger.Warn("expense log append failed",
				zap.String("expense_id", id), zap.Error(err))
		}
		s.restockFromExpense(ctx, req)
	}

	return req, nil
}

// restockFromExpense 入库数量 = 档位倍数 × 购买数量。
// 档位标签形如 "Tier 2"，取该品目第2档的Qty为倍数；解析不了按1。
func (s *ExpenseService) restockFromExpense(ctx context.Context, req *entity.ExpenseRequest) {
	item, err := s.stockSvc.ResolveByName(ctx, req.ItemName)
	if err != nil {
		s.logger.Warn("expense restock skipped: item not found",
			zap.String("expense_id", req.ID),
			zap.String("item", req.ItemName),
			zap.Error(err))
		return
	}

	multiplier := s.tierMultiplier(ctx, item.ID, req.Tier)
	stockToAdd := multiplier * req.Qty
	if stockToAdd <= 0 {
		return
	}
	if _, err := s.stockSvc.Restore(ctx, item, stockToAdd, entity.MovementExpenseRestock, "EXPENSE", req.ID); err != nil {
		s.logger.Warn("expense restock failed",
			zap.String("expense_id", req.ID),
			zap.String("item", req.ItemName),
			zap.Error(err))
	}
}

func (s *ExpenseService) tierMultiplier(ctx context.Context, itemID, tierLabel string) int {
	seq, ok := parseTierLabel(tierLabel)
	if !ok {
		return 1
	}
	ps, err := s.priceRepo.GetByItem(ctx, itemID)
	if err != nil {
		return 1
	}
	for _, t := range ps.Tiers {
		if t.Seq == seq && t.Qty > 0 {
			return t.Qty
		}
	}
	return 1
}

// parseTierLabel 解析 "Tier N" 标签，大小写不敏感
func parseTierLabel(label string) (int, bool) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 || !strings.EqualFold(fields[0], "tier") {
		return 0, false
	}
	seq, err := strconv.Atoi(fields[1])
	if err != nil || seq < 1 || seq > entity.MaxPriceTiers {
		return 0, false
	}
	return seq, true
}

func (s *ExpenseService) List(ctx context.Context, status string, page, size int) ([]entity.ExpenseRequest, int64, error) {
	return s.expenseRepo.List(ctx, status, page, size)
}

func (s *ExpenseService) ListLog(ctx context.Context, page, size int) ([]entity.ExpenseLog, int64, error) {
	return s.expenseRepo.ListLog(ctx, page, size)
}
