package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService 订购工作流：PENDING → APPROVE / DECLINE / APPLY
type OrderService struct {
	orderRepo *repository.OrderRepository
	stockSvc  *StockService
	loc       *time.Location
	logger    *zap.Logger
}

func NewOrderService(orderRepo *repository.OrderRepository, stockSvc *StockService, loc *time.Location, logger *zap.Logger) *OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderService{orderRepo: orderRepo, stockSvc: stockSvc, loc: loc, logger: logger}
}

// orderTimestampLayout 旧前端展示用的时间格式 DD/MM/YYYY HH:mm:ss
const orderTimestampLayout = "02/01/2006 15:04:05"

type OrderLine struct {
	ItemName string `json:"item_name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type SubmitOrderRequest struct {
	Email      string      `json:"email" binding:"required,email"`
	Department string      `json:"department" binding:"required"`
	Items      []OrderLine `json:"items" binding:"required,min=1,dive"`
}

// Submit 提交订单。先整单校验（任何一行失败整单拒绝，不动库存），
// 再落LOG行，最后逐行扣减。落单在扣减之前，中途失败留下可审计的
// PENDING记录而不是无声丢失库存。
func (s *OrderService) Submit(ctx context.Context, req SubmitOrderRequest) (*entity.Order, error) {
	if len(req.Items) > entity.MaxOrderItems {
		return nil, ErrTooManyItems
	}

	index, err := s.stockSvc.IndexByName(ctx)
	if err != nil {
		return nil, err
	}

	// 整单校验：先解析再验上限，全部通过前不做任何变更
	resolved := make([]*entity.Item, len(req.Items))
	for i, line := range req.Items {
		item, ok := index[line.ItemName]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrItemNotFound, line.ItemName)
		}
		resolved[i] = item
	}
	for i, line := range req.Items {
		max := Ceiling(resolved[i])
		if line.Quantity > max {
			return nil, &LimitExceededError{
				ItemName:  line.ItemName,
				Requested: line.Quantity,
				Max:       max,
			}
		}
	}

	order := &entity.Order{
		Timestamp:  time.Now().In(s.loc).Format(orderTimestampLayout),
		Email:      req.Email,
		Department: req.Department,
		Status:     entity.OrderStatusPending,
	}
	for i, line := range req.Items {
		order.Items = append(order.Items, entity.OrderItem{
			Seq:      i + 1,
			ItemName: line.ItemName,
			Quantity: line.Quantity,
		})
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// 扣减阶段的失败不回滚已扣部分，只记录告警，订单本身保留为审计记录
	refID := strconv.FormatUint(uint64(order.ID), 10)
	for i, line := range req.Items {
		if _, err := s.stockSvc.Deduct(ctx, resolved[i], line.Quantity, "ORDER", refID); err != nil {
			s.logger.Warn("partial stock deduction",
				zap.Uint("order_id", order.ID),
				zap.String("item", line.ItemName),
				zap.Error(err))
		}
	}

	return order, nil
}

// RestorationLine 管理员下调数量时显式返还的差额
type RestorationLine struct {
	ItemName string `json:"item_name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
	// Items 改单时重写的行项（仅PENDING订单）
	Items []OrderLine `json:"items"`
	// StockRestoration 显式返还差额，与DECLINE返还相互独立
	StockRestoration []RestorationLine `json:"stock_restoration"`
}

// SetStatus 状态流转。DECLINE时按订单行返还库存，且每张订单只返还一次
// （stock_restored标记，防止重复DECLINE造成双重返还）。
func (s *OrderService) SetStatus(ctx context.Context, id uint, req SetStatusRequest) (*entity.Order, error) {
	if !entity.ValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, fmt.Errorf("update status for order %d: %w", id, err)
	}
	order.Status = req.Status

	refID := strconv.FormatUint(uint64(id), 10)

	// 改单：清空重写10组名称/数量
	if req.Items != nil {
		if len(req.Items) > entity.MaxOrderItems {
			return nil, ErrTooManyItems
		}
		items := make([]entity.OrderItem, 0, len(req.Items))
		for i, line := range req.Items {
			items = append(items, entity.OrderItem{
				Seq:      i + 1,
				ItemName: line.ItemName,
				Quantity: line.Quantity,
			})
		}
		if err := s.orderRepo.ReplaceItems(ctx, id, items); err != nil {
			return nil, fmt.Errorf("rewrite items for order %d: %w", id, err)
		}
		order.Items = items
	}

	// 拒单返还：把预留库存加回池子，每张订单只执行一次
	if req.Status == entity.OrderStatusDecline && len(order.Items) > 0 {
		if order.StockRestored {
			s.logger.Info("decline restoration already applied, skipping",
				zap.Uint("order_id", id))
		} else {
			s.restoreLines(ctx, order.Items, entity.MovementDeclineRestore, refID)
			if err := s.orderRepo.MarkStockRestored(ctx, id); err != nil {
				s.logger.Warn("mark stock restored failed", zap.Uint("order_id", id), zap.Error(err))
			}
			order.StockRestored = true
		}
	}

	// 显式差额返还（管理员下调PENDING订单数量时由调用方提供）
	for _, line := range req.StockRestoration {
		item, err := s.stockSvc.ResolveByName(ctx, line.ItemName)
		if err != nil {
			s.logger.Warn("stock restoration skipped",
				zap.Uint("order_id", id),
				zap.String("item", line.ItemName),
				zap.Error(err))
			continue
		}
		if _, err := s.stockSvc.Restore(ctx, item, line.Quantity, entity.MovementEditRestore, "ORDER", refID); err != nil {
			s.logger.Warn("stock restoration failed",
				zap.Uint("order_id", id),
				zap.String("item", line.ItemName),
				zap.Error(err))
		}
	}

	return order, nil
}

func (s *OrderService) restoreLines(ctx context.Context, lines []entity.OrderItem, movementType, refID string) {
	for _, line := range lines {
		item, err := s.stockSvc.ResolveByName(ctx, line.ItemName)
		if err != nil {
			s.logger.Warn("decline restoration skipped",
				zap.String("item", line.ItemName),
				zap.Error(err))
			continue
		}
		if _, err := s.stockSvc.Restore(ctx, item, line.Quantity, movementType, "ORDER", refID); err != nil {
			s.logger.Warn("decline restoration failed",
				zap.String("item", line.ItemName),
				zap.Error(err))
		}
	}
}

func (s *OrderService) Get(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, params repository.OrderListParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

func (s *OrderService) ListAll(ctx context.Context) ([]entity.Order, error) {
	return s.orderRepo.ListAll(ctx)
}
