package repository

import "gorm.io/gorm"

// Repositories 仓库集合
type Repositories struct {
	Item    *ItemRepository
	Price   *PriceRepository
	Order   *OrderRepository
	Expense *ExpenseRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Item:    NewItemRepository(db),
		Price:   NewPriceRepository(db),
		Order:   NewOrderRepository(db),
		Expense: NewExpenseRepository(db),
	}
}
