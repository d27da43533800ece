package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 库存
		&Item{},
		&PriceStock{},
		&PriceTier{},
		&StockMovement{},

		// 订单
		&Order{},
		&OrderItem{},

		// 报销
		&ExpenseRequest{},
		&ExpenseLog{},
	)
}
