package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StockService 库存台账，current_stock的唯一修改入口
type StockService struct {
	itemRepo *repository.ItemRepository
	rdb      *redis.Client
	logger   *zap.Logger
}

func NewStockService(itemRepo *repository.ItemRepository, rdb *redis.Client, logger *zap.Logger) *StockService {
	return &StockService{itemRepo: itemRepo, rdb: rdb, logger: logger}
}

// Ceiling 单次订购数量上限：设置了OrderLimit用OrderLimit，否则以现有库存为上限
func Ceiling(item *entity.Item) int {
	if item.OrderLimit > 0 {
		return item.OrderLimit
	}
	return item.CurrentStock
}

// ResolveByID 按ID查找品目
func (s *StockService) ResolveByID(ctx context.Context, id string) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("resolve item %s: %w", id, err)
	}
	return item, nil
}

// ResolveByName 按名称查找品目（旧版订单流的引用方式，取第一个精确匹配）
func (s *StockService) ResolveByName(ctx context.Context, name string) (*entity.Item, error) {
	item, err := s.itemRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("resolve item %q: %w", name, err)
	}
	return item, nil
}

// IndexByName 一次加载全部品目并建名称索引，批量校验用，避免逐行扫描
func (s *StockService) IndexByName(ctx context.Context) (map[string]*entity.Item, error) {
	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	index := make(map[string]*entity.Item, len(items))
	for i := range items {
		// 同名取最先创建的一个，与ResolveByName一致
		if _, ok := index[items[i].Name]; !ok {
			index[items[i].Name] = &items[i]
		}
	}
	return index, nil
}

// Deduct 扣减库存，下限0。超扣不报错而是静默截断：数量在变更前已按上限
// 校验过，这里保留旧系统的截断行为。
func (s *StockService) Deduct(ctx context.Context, item *entity.Item, qty int, refType, refID string) (int, error) {
	newStock := item.CurrentStock - qty
	if newStock < 0 {
		newStock = 0
	}
	if err := s.apply(ctx, item, newStock, entity.MovementOrderDeduct, -qty, refType, refID); err != nil {
		return item.CurrentStock, err
	}
	return newStock, nil
}

// Restore 无条件加回库存，不做上限检查
func (s *StockService) Restore(ctx context.Context, item *entity.Item, qty int, movementType, refType, refID string) (int, error) {
	newStock := item.CurrentStock + qty
	if err := s.apply(ctx, item, newStock, movementType, qty, refType, refID); err != nil {
		return item.CurrentStock, err
	}
	return newStock, nil
}

// Restock 补货，与Restore同语义，仅流水类型区分调用方意图
func (s *StockService) Restock(ctx context.Context, item *entity.Item, qty int, refType, refID string) (int, error) {
	return s.Restore(ctx, item, qty, entity.MovementAdminRestock, refType, refID)
}

func (s *StockService) apply(ctx context.Context, item *entity.Item, newStock int, movementType string, delta int, refType, refID string) error {
	if err := s.itemRepo.UpdateStock(ctx, item.ID, newStock); err != nil {
		return fmt.Errorf("update stock for %s: %w", item.ID, err)
	}
	item.CurrentStock = newStock

	m := &entity.StockMovement{
		ID:        uuid.New().String()[:32],
		ItemID:    item.ID,
		ItemName:  item.Name,
		Type:      movementType,
		Quantity:  delta,
		Resulting: newStock,
		RefType:   refType,
		RefID:     refID,
	}
	if err := s.itemRepo.CreateMovement(ctx, m); err != nil {
		// 流水失败不回滚库存，仅告警
		s.logger.Warn("stock movement not recorded",
			zap.String("item_id", item.ID),
			zap.String("type", movementType),
			zap.Error(err))
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *StockService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, itemListCacheKey).Err(); err != nil && err != redis.Nil {
		s.logger.Warn("item cache invalidation failed", zap.Error(err))
	}
}

func (s *StockService) ListMovements(ctx context.Context, itemID string, page, size int) ([]entity.StockMovement, int64, error) {
	return s.itemRepo.ListMovements(ctx, itemID, page, size)
}
