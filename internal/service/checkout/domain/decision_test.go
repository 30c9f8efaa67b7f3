package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_DisabledAlwaysAllows(t *testing.T) {
	rules := RuleSet{{GroupID: 2, MinAmount: 100}}
	for _, amount := range []float64{-10, 0, 40, 150} {
		d := Decide(false, 2, amount, rules, "blocked")
		assert.True(t, d.Allowed)
		assert.Empty(t, d.RenderedMessage)
	}
}

func TestDecide_NoRuleForGroupNeverBlocks(t *testing.T) {
	rules := RuleSet{{GroupID: 2, MinAmount: 100}}
	// 没有匹配规则时门槛为 0，0 <= amount 永远不会被拦截
	for _, amount := range []float64{0, 1, 99999} {
		assert.True(t, Decide(true, 5, amount, rules, "msg").Allowed)
	}
}

func TestDecide_NegativeThresholdNeverBlocks(t *testing.T) {
	rules := RuleSet{{GroupID: 1, MinAmount: -50}}
	assert.True(t, Decide(true, 1, 10, rules, "msg").Allowed)
	assert.True(t, Decide(true, 1, 0, rules, "msg").Allowed)
}

func TestDecide_NegativeCartAmountNeverBlocks(t *testing.T) {
	rules := RuleSet{{GroupID: 1, MinAmount: 50}}
	assert.True(t, Decide(true, 1, -1, rules, "msg").Allowed)
}

func TestDecide_BlocksBelowThreshold(t *testing.T) {
	rules := RuleSet{{GroupID: 2, MinAmount: 100}}

	d := Decide(true, 2, 40, rules, "need -conf-, have -cart-")
	assert.False(t, d.Allowed)
	assert.Equal(t, "need 100, have 40", d.RenderedMessage)

	// 单调性：更低的金额同样拦截，达到门槛即放行
	assert.False(t, Decide(true, 2, 10, rules, "m").Allowed)
	assert.True(t, Decide(true, 2, 100, rules, "m").Allowed)
	assert.True(t, Decide(true, 2, 150, rules, "m").Allowed)
}

func TestDecide_ZeroCartBelowPositiveThresholdBlocks(t *testing.T) {
	rules := RuleSet{{GroupID: 0, MinAmount: 30}}
	d := Decide(true, GuestGroupID, 0, rules, "min is -conf-")
	assert.False(t, d.Allowed)
	assert.Equal(t, "min is 30", d.RenderedMessage)
}

func TestDecide_Deterministic(t *testing.T) {
	rules := RuleSet{{GroupID: 2, MinAmount: 100}}
	first := Decide(true, 2, 40, rules, "-conf-/-cart-")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Decide(true, 2, 40, rules, "-conf-/-cart-"))
	}
}

func TestRenderMessage_Substitution(t *testing.T) {
	assert.Equal(t, "Need 100 more than 40",
		RenderMessage("Need -conf- more than -cart-", 100, 40))
}

func TestRenderMessage_AllOccurrencesReplaced(t *testing.T) {
	assert.Equal(t, "30.5 30.5 12 12",
		RenderMessage("-conf- -conf- -cart- -cart-", 30.5, 12))
}

func TestRenderMessage_NoTokens(t *testing.T) {
	assert.Equal(t, "cart too small", RenderMessage("cart too small", 100, 40))
}

func TestRenderMessage_ShortestDecimalForm(t *testing.T) {
	// 与历史的字符串化行为一致：整数不带小数点
	assert.Equal(t, "40", RenderMessage("-cart-", 0, 40.0))
	assert.Equal(t, "0.5", RenderMessage("-cart-", 0, 0.5))
}
