package entity

import "time"

// 报销申请状态（对应旧表EXPENSESTATUS的STATUS列）
const (
	ExpenseStatusPending = "PENDING"
	ExpenseStatusSuccess = "SUCCESS"
	ExpenseStatusFailed  = "FAILED"
)

// ValidExpenseStatus 校验报销状态取值
func ValidExpenseStatus(status string) bool {
	switch status {
	case ExpenseStatusPending, ExpenseStatusSuccess, ExpenseStatusFailed:
		return true
	}
	return false
}

// ExpenseRequest 采购报销申请，按行项记录（对应旧表EXPENSESTATUS的一行）
type ExpenseRequest struct {
	// ID 格式 <毫秒时间戳>_<行下标>，每行唯一
	ID       string  `json:"id" gorm:"primaryKey;size:32"`
	ItemName string  `json:"item_name" gorm:"size:200;not null"`
	Tier     string  `json:"tier" gorm:"size:20"` // 如 "Tier 2"，空=按基础价
	Qty      int     `json:"qty" gorm:"not null"`
	Price    float64 `json:"price" gorm:"type:decimal(12,2);not null"`
	Total    float64 `json:"total" gorm:"type:decimal(12,2);not null"`
	Status   string  `json:"status" gorm:"size:10;not null;default:PENDING;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExpenseRequest) TableName() string {
	return "expense_requests"
}

// ExpenseLog 报销成功后的只追加审计记录（对应旧表EXPENSELOG）
type ExpenseLog struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID string    `json:"request_id" gorm:"size:32;not null;index"`
	ItemName  string    `json:"item_name" gorm:"size:200;not null"`
	Tier      string    `json:"tier" gorm:"size:20"`
	Qty       int       `json:"qty" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	Total     float64   `json:"total" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (ExpenseLog) TableName() string {
	return "expense_logs"
}
