package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minorder/internal/service/checkout/domain"
)

func TestRuleSetMapping_RoundTripKeepsOrder(t *testing.T) {
	rules := domain.RuleSet{
		{GroupID: 2, MinAmount: 100},
		{GroupID: 0, MinAmount: 25},
		{GroupID: 2, MinAmount: 999}, // 重复组，顺序决定生效规则
	}

	models := FromDomainRuleSet(rules)
	require.Len(t, models, 3)
	for i, m := range models {
		assert.Equal(t, i, m.Position)
	}

	back := ToDomainRuleSet(models)
	assert.Equal(t, rules, back)
	// first-match-wins 语义经映射后保持不变
	assert.Equal(t, 100.0, back.Lookup(2))
}
