package entity

import "time"

// 订单状态（对应旧表LOG的STATUS列）
const (
	OrderStatusPending = "PENDING"
	OrderStatusApprove = "APPROVE"
	OrderStatusDecline = "DECLINE"
	OrderStatusApply   = "APPLY"
)

// MaxOrderItems 每张订单最多10个品目（旧表LOG固定10组名称/数量列）
const MaxOrderItems = 10

// ValidOrderStatus 校验订单状态取值
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusApprove, OrderStatusDecline, OrderStatusApply:
		return true
	}
	return false
}

// Order 文具订购申请（对应旧表LOG的一行）
type Order struct {
	ID uint `json:"id" gorm:"primaryKey;autoIncrement"`
	// Timestamp 本地化时间字符串 DD/MM/YYYY HH:mm:ss，保持旧前端展示格式
	Timestamp  string `json:"timestamp" gorm:"size:20;not null"`
	Email      string `json:"email" gorm:"size:200;not null"`
	Department string `json:"department" gorm:"size:100;not null"`
	Status     string `json:"status" gorm:"size:10;not null;default:PENDING;index"`
	// StockRestored 拒单返还是否已执行，防止重复返还
	StockRestored bool `json:"stock_restored" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单行项，按名称引用品目（旧表按名称存储）
type OrderItem struct {
	ID       uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID  uint   `json:"-" gorm:"not null;index"`
	Seq      int    `json:"seq" gorm:"not null"` // 1..10
	ItemName string `json:"item_name" gorm:"size:200;not null"`
	Quantity int    `json:"quantity" gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
