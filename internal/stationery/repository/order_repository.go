package repository

import (
	"context"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create 一次事务写入订单及其行项
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	if err := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

type OrderListParams struct {
	Status     string
	Email      string
	Department string
	Page       int
	Size       int
}

func (r *OrderRepository) List(ctx context.Context, params OrderListParams) ([]entity.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Order{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Email != "" {
		query = query.Where("email = ?", params.Email)
	}
	if params.Department != "" {
		query = query.Where("department = ?", params.Department)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var orders []entity.Order
	err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).Order("id DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&orders).Error
	return orders, total, err
}

// ListAll 全量导出用
func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).Order("id ASC").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).
		Update("status", status).Error
}

// MarkStockRestored 置位返还标记，与状态更新同一事务外也安全（幂等）
func (r *OrderRepository) MarkStockRestored(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).Where("id = ?", id).
		Update("stock_restored", true).Error
}

// ReplaceItems 清空并重写订单行项（PENDING状态下的改单）
func (r *OrderRepository) ReplaceItems(ctx context.Context, orderID uint, items []entity.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = orderID
			items[i].Seq = i + 1
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}
