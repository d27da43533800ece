package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// itemListCacheKey 全量品目列表的读穿缓存键
	itemListCacheKey = "stationery:items:all"
	// itemListCacheTTL 固定60秒，任何库存/品目变更立即失效
	itemListCacheTTL = 60 * time.Second
)

// ItemService 品目CRUD与补货
type ItemService struct {
	itemRepo  *repository.ItemRepository
	priceRepo *repository.PriceRepository
	stockSvc  *StockService
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewItemService(itemRepo *repository.ItemRepository, priceRepo *repository.PriceRepository, stockSvc *StockService, rdb *redis.Client, logger *zap.Logger) *ItemService {
	return &ItemService{
		itemRepo:  itemRepo,
		priceRepo: priceRepo,
		stockSvc:  stockSvc,
		rdb:       rdb,
		logger:    logger,
	}
}

func (s *ItemService) List(ctx context.Context, params repository.ItemListParams) ([]entity.Item, int64, error) {
	return s.itemRepo.List(ctx, params)
}

// ListAll 全量列表，带60秒redis读穿缓存（批量读走这里，减轻存储压力）
func (s *ItemService) ListAll(ctx context.Context) ([]entity.Item, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, itemListCacheKey).Result()
		if err == nil {
			var items []entity.Item
			if jsonErr := json.Unmarshal([]byte(cached), &items); jsonErr == nil {
				return items, nil
			}
		}
	}

	items, err := s.itemRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, jsonErr := json.Marshal(items); jsonErr == nil {
			if err := s.rdb.Set(ctx, itemListCacheKey, data, itemListCacheTTL).Err(); err != nil {
				s.logger.Warn("item cache write failed", zap.Error(err))
			}
		}
	}
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, id string) (*entity.Item, error) {
	return s.stockSvc.ResolveByID(ctx, id)
}

type CreateItemRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	ImageURL     string `json:"image_url"`
	CurrentStock int    `json:"current_stock" binding:"gte=0"`
	OrderLimit   int    `json:"order_limit" binding:"gte=0"`
	TargetStock  int    `json:"target_stock" binding:"gte=0"`
}

func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*entity.Item, error) {
	item := &entity.Item{
		ID:           uuid.New().String()[:32],
		Name:         req.Name,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		CurrentStock: req.CurrentStock,
		OrderLimit:   req.OrderLimit,
		TargetStock:  req.TargetStock,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	s.invalidateCache(ctx)
	return item, nil
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
	OrderLimit  *int    `json:"order_limit"`
	TargetStock *int    `json:"target_stock"`
}

// Update 不在这里改库存，库存只走StockService
func (s *ItemService) Update(ctx context.Context, id string, req UpdateItemRequest) (*entity.Item, error) {
	item, err := s.stockSvc.ResolveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.OrderLimit != nil {
		if *req.OrderLimit < 0 {
			return nil, fmt.Errorf("%w: order_limit must be >= 0", ErrValidation)
		}
		item.OrderLimit = *req.OrderLimit
	}
	if req.TargetStock != nil {
		if *req.TargetStock < 0 {
			return nil, fmt.Errorf("%w: target_stock must be >= 0", ErrValidation)
		}
		item.TargetStock = *req.TargetStock
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item %s: %w", id, err)
	}
	s.invalidateCache(ctx)
	return item, nil
}

// Restock 管理员补货
func (s *ItemService) Restock(ctx context.Context, id string, qty int, operator string) (*entity.Item, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be > 0", ErrValidation)
	}
	item, err := s.stockSvc.ResolveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.stockSvc.Restock(ctx, item, qty, "MANUAL", operator); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	if _, err := s.stockSvc.ResolveByID(ctx, id); err != nil {
		return err
	}
	if err := s.priceRepo.Delete(ctx, id); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("delete price for %s: %w", id, err)
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	s.invalidateCache(ctx)
	return nil
}

// GetPrice 品目价格及批量价格档
func (s *ItemService) GetPrice(ctx context.Context, itemID string) (*entity.PriceStock, error) {
	if _, err := s.stockSvc.ResolveByID(ctx, itemID); err != nil {
		return nil, err
	}
	ps, err := s.priceRepo.GetByItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.PriceStock{ItemID: itemID}, nil
		}
		return nil, fmt.Errorf("get price for %s: %w", itemID, err)
	}
	return ps, nil
}

type TierInput struct {
	Qty   int     `json:"qty" binding:"required,gt=0"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

type UpdatePriceRequest struct {
	BasePrice float64     `json:"base_price" binding:"gte=0"`
	Tiers     []TierInput `json:"tiers"`
}

func (s *ItemService) UpdatePrice(ctx context.Context, itemID string, req UpdatePriceRequest) (*entity.PriceStock, error) {
	if _, err := s.stockSvc.ResolveByID(ctx, itemID); err != nil {
		return nil, err
	}
	if len(req.Tiers) > entity.MaxPriceTiers {
		return nil, fmt.Errorf("%w: at most %d price tiers", ErrValidation, entity.MaxPriceTiers)
	}
	ps := &entity.PriceStock{
		ItemID:    itemID,
		BasePrice: req.BasePrice,
	}
	for i, t := range req.Tiers {
		ps.Tiers = append(ps.Tiers, entity.PriceTier{
			ItemID: itemID,
			Seq:    i + 1,
			Qty:    t.Qty,
			Price:  t.Price,
		})
	}
	if err := s.priceRepo.Upsert(ctx, ps); err != nil {
		return nil, fmt.Errorf("save price for %s: %w", itemID, err)
	}
	return ps, nil
}

func (s *ItemService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, itemListCacheKey).Err(); err != nil && err != redis.Nil {
		s.logger.Warn("item cache invalidation failed", zap.Error(err))
	}
}
