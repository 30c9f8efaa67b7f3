// checkout-service/internal/infrastructure/mapper.go
package infrastructure

import "minorder/internal/service/checkout/domain"

// ToDomainRuleSet 将数据库模型转换为领域模型，保持 Position 顺序。
func ToDomainRuleSet(models []MinOrderRuleModel) domain.RuleSet {
	rules := make(domain.RuleSet, len(models))
	for i, m := range models {
		rules[i] = domain.ThresholdRule{
			GroupID:   m.GroupID,
			MinAmount: m.MinAmount,
		}
	}
	return rules
}

// FromDomainRuleSet 将领域模型转换为数据库模型，下标即行顺序。
func FromDomainRuleSet(rules domain.RuleSet) []MinOrderRuleModel {
	models := make([]MinOrderRuleModel, len(rules))
	for i, r := range rules {
		models[i] = MinOrderRuleModel{
			Position:  i,
			GroupID:   r.GroupID,
			MinAmount: r.MinAmount,
		}
	}
	return models
}
