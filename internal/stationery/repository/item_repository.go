package repository

import (
	"context"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

type ItemListParams struct {
	Category string
	Keyword  string
	LowStock bool
	Page     int
	Size     int
}

func (r *ItemRepository) List(ctx context.Context, params ItemListParams) ([]entity.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Item{})
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Keyword != "" {
		query = query.Where("name ILIKE ?", "%"+params.Keyword+"%")
	}
	if params.LowStock {
		query = query.Where("current_stock < target_stock AND target_stock > 0")
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 100
	}
	var items []entity.Item
	err := query.Order("name ASC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&items).Error
	return items, total, err
}

// ListAll 获取全部品目（报表、批量校验用）。
// 同名品目按created_at排序，保证名称索引稳定取先建的那条。
func (r *ItemRepository) ListAll(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	err := r.db.WithContext(ctx).Order("name ASC, created_at ASC").Find(&items).Error
	return items, err
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByName 按名称查找，取第一个精确匹配（旧版订单流按名称引用品目）
func (r *ItemRepository) GetByName(ctx context.Context, name string) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("created_at ASC").First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateStock 只更新库存列，避免覆盖并发修改的其他字段
func (r *ItemRepository) UpdateStock(ctx context.Context, id string, stock int) error {
	return r.db.WithContext(ctx).Model(&entity.Item{}).Where("id = ?", id).
		Update("current_stock", stock).Error
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Item{}).Error
}

func (r *ItemRepository) CreateMovement(ctx context.Context, m *entity.StockMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ItemRepository) ListMovements(ctx context.Context, itemID string, page, size int) ([]entity.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.StockMovement{})
	if itemID != "" {
		query = query.Where("item_id = ?", itemID)
	}
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var ms []entity.StockMovement
	err := query.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&ms).Error
	return ms, total, err
}
