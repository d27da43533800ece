package entity

import "time"

// Item 文具库存品目（对应旧表ITEMLOG的一行）
type Item struct {
	ID       string `json:"id" gorm:"primaryKey;size:32"`
	Name     string `json:"name" gorm:"size:200;not null;index"`
	Category string `json:"category" gorm:"size:100"`
	ImageURL string `json:"image_url" gorm:"size:500"`

	// 库存
	CurrentStock int `json:"current_stock" gorm:"not null;default:0"`
	// OrderLimit 管理员设置的单次订购上限；0表示未设置，以现有库存为上限
	OrderLimit  int `json:"order_limit" gorm:"not null;default:0"`
	TargetStock int `json:"target_stock" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) TableName() string {
	return "items"
}

// PriceStock 品目价格信息（对应旧表PRICESTOCK的一行）
type PriceStock struct {
	ItemID    string  `json:"item_id" gorm:"primaryKey;size:32"`
	BasePrice float64 `json:"base_price" gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tiers []PriceTier `json:"tiers,omitempty" gorm:"foreignKey:ItemID;references:ItemID"`
}

func (PriceStock) TableName() string {
	return "price_stocks"
}

// MaxPriceTiers 每个品目最多5档批量价（旧表固定5组TIER列）
const MaxPriceTiers = 5

// PriceTier 批量价格档：按Qty的倍数购买，每个倍数单价Price
type PriceTier struct {
	ID     uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	ItemID string  `json:"-" gorm:"size:32;not null;index:idx_price_tiers_item_seq,unique"`
	Seq    int     `json:"seq" gorm:"not null;index:idx_price_tiers_item_seq,unique"` // 1..5
	Qty    int     `json:"qty" gorm:"not null"`
	Price  float64 `json:"price" gorm:"type:decimal(12,2);not null"`
}

func (PriceTier) TableName() string {
	return "price_tiers"
}

// 库存变动类型
const (
	MovementOrderDeduct    = "ORDER_DEDUCT"    // 下单扣减
	MovementDeclineRestore = "DECLINE_RESTORE" // 拒单返还
	MovementEditRestore    = "EDIT_RESTORE"    // 管理员改单返还
	MovementAdminRestock   = "ADMIN_RESTOCK"   // 管理员补货
	MovementExpenseRestock = "EXPENSE_RESTOCK" // 报销成功入库
)

// StockMovement 库存变动流水
type StockMovement struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	ItemID    string    `json:"item_id" gorm:"size:32;not null;index"`
	ItemName  string    `json:"item_name" gorm:"size:200"`
	Type      string    `json:"type" gorm:"size:20;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"` // 正=入，负=出
	Resulting int       `json:"resulting" gorm:"not null"`
	RefType   string    `json:"ref_type" gorm:"size:20"` // ORDER/EXPENSE/MANUAL
	RefID     string    `json:"ref_id" gorm:"size:50"`
	CreatedBy string    `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time `json:"created_at"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}
