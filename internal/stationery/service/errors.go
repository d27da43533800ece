package service

import (
	"errors"
	"fmt"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
)

// 工作流错误分类，handler层据此映射错误码
var (
	ErrItemNotFound    = errors.New("item not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrExpenseNotFound = errors.New("expense request not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrTooManyItems    = fmt.Errorf("order exceeds %d line items", entity.MaxOrderItems)
	ErrValidation      = errors.New("validation failed")
)

// LimitExceededError 单个品目超出订购上限
type LimitExceededError struct {
	ItemName  string
	Requested int
	Max       int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("quantity %d for %q exceeds limit %d", e.Requested, e.ItemName, e.Max)
}
