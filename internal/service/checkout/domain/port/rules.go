// checkout-service/internal/domain/port/rules.go
package port

import (
	"context"

	"minorder/internal/service/checkout/domain"
)

// RuleRepository 是后台规则表格的持久化端口。
// 数据库是规则的事实来源；保存后序列化发布到配置中心作为热分发路径。
type RuleRepository interface {
	FindAll(ctx context.Context) (domain.RuleSet, error)
	// Replace 用给定的规则集整体替换现有规则，保持管理员给出的顺序。
	Replace(ctx context.Context, rules domain.RuleSet) error
}
