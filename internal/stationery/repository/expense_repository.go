package repository

import (
	"context"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) CreateBatch(ctx context.Context, reqs []entity.ExpenseRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&reqs).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*entity.ExpenseRequest, error) {
	var req entity.ExpenseRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ExpenseRepository) List(ctx context.Context, status string, page, size int) ([]entity.ExpenseRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.ExpenseRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var reqs []entity.ExpenseRequest
	err := query.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&reqs).Error
	return reqs, total, err
}

func (r *ExpenseRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&entity.ExpenseRequest{}).Where("id = ?", id).
		Update("status", status).Error
}

// AppendLog 写入只追加的报销审计记录
func (r *ExpenseRepository) AppendLog(ctx context.Context, log *entity.ExpenseLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *ExpenseRepository) ListLog(ctx context.Context, page, size int) ([]entity.ExpenseLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.ExpenseLog{})
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var logs []entity.ExpenseLog
	err := query.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&logs).Error
	return logs, total, err
}
