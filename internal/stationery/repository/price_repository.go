package repository

import (
	"context"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"gorm.io/gorm"
)

type PriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

func (r *PriceRepository) GetByItem(ctx context.Context, itemID string) (*entity.PriceStock, error) {
	var ps entity.PriceStock
	if err := r.db.WithContext(ctx).Preload("Tiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).Where("item_id = ?", itemID).First(&ps).Error; err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r *PriceRepository) ListAll(ctx context.Context) ([]entity.PriceStock, error) {
	var list []entity.PriceStock
	err := r.db.WithContext(ctx).Preload("Tiers", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).Find(&list).Error
	return list, err
}

// Upsert 覆盖写入价格及全部价格档
func (r *PriceRepository) Upsert(ctx context.Context, ps *entity.PriceStock) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", ps.ItemID).Delete(&entity.PriceTier{}).Error; err != nil {
			return err
		}
		tiers := ps.Tiers
		ps.Tiers = nil
		if err := tx.Save(ps).Error; err != nil {
			return err
		}
		for i := range tiers {
			tiers[i].ID = 0
			tiers[i].ItemID = ps.ItemID
		}
		if len(tiers) > 0 {
			if err := tx.Create(&tiers).Error; err != nil {
				return err
			}
		}
		ps.Tiers = tiers
		return nil
	})
}

func (r *PriceRepository) Delete(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).Delete(&entity.PriceTier{}).Error; err != nil {
			return err
		}
		return tx.Where("item_id = ?", itemID).Delete(&entity.PriceStock{}).Error
	})
}
