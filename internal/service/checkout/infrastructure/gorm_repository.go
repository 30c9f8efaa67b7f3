// checkout-service/internal/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"

	"gorm.io/gorm"

	"minorder/internal/service/checkout/domain"
)

// GormRuleRepository 是 port.RuleRepository 的 GORM 实现。
type GormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository 创建一个新的 GORM 仓储实例。
func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

// FindAll 按后台配置顺序返回全部规则。
func (r *GormRuleRepository) FindAll(ctx context.Context) (domain.RuleSet, error) {
	var models []MinOrderRuleModel
	if err := r.db.WithContext(ctx).Order("position asc").Find(&models).Error; err != nil {
		return nil, err
	}
	return ToDomainRuleSet(models), nil
}

// Replace 在一个事务里整体替换规则表，保持传入顺序。
func (r *GormRuleRepository) Replace(ctx context.Context, rules domain.RuleSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&MinOrderRuleModel{}).Error; err != nil {
			return err
		}
		models := FromDomainRuleSet(rules)
		if len(models) == 0 {
			return nil
		}
		return tx.Create(&models).Error
	})
}
