// checkout-service/internal/infrastructure/gorm_model.go
package infrastructure

import "time"

// MinOrderRuleModel 对应数据库中的 min_order_rules 表。
// Position 保存管理员在后台表格里的行顺序，
// 判定时 first-match-wins 的"先后"就是这个顺序。
type MinOrderRuleModel struct {
	ID        uint `gorm:"primaryKey"`
	Position  int  `gorm:"index"`
	GroupID   int64
	MinAmount float64 `gorm:"type:decimal(12,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名。
func (MinOrderRuleModel) TableName() string {
	return "min_order_rules"
}
