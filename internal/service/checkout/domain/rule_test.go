package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleSet_BareArray(t *testing.T) {
	rules, err := ParseRuleSet(`[{"customer_group_id": 1, "min_amount": 100}, {"customer_group_id": 2, "min_amount": 50.5}]`)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, ThresholdRule{GroupID: 1, MinAmount: 100}, rules[0])
	assert.Equal(t, ThresholdRule{GroupID: 2, MinAmount: 50.5}, rules[1])
}

func TestParseRuleSet_VersionedEnvelope(t *testing.T) {
	rules, err := ParseRuleSet(`{"version": 1, "rules": [{"customer_group_id": 3, "min_amount": 200}]}`)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, int64(3), rules[0].GroupID)
	assert.Equal(t, 200.0, rules[0].MinAmount)
}

func TestParseRuleSet_NumericStrings(t *testing.T) {
	// 历史后台把所有值都存成字符串
	rules, err := ParseRuleSet(`[{"customer_group_id": "2", "min_amount": "100"}]`)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, int64(2), rules[0].GroupID)
	assert.Equal(t, 100.0, rules[0].MinAmount)
}

func TestParseRuleSet_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		rules, err := ParseRuleSet(raw)
		require.NoError(t, err)
		assert.Empty(t, rules)
	}
}

func TestParseRuleSet_EmptyEnvelopeRules(t *testing.T) {
	rules, err := ParseRuleSet(`{"version": 1}`)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestParseRuleSet_Malformed(t *testing.T) {
	cases := map[string]string{
		"invalid json":       `[{`,
		"missing group id":   `[{"min_amount": 100}]`,
		"missing min amount": `[{"customer_group_id": 1}]`,
		"non numeric group":  `[{"customer_group_id": "abc", "min_amount": 100}]`,
		"non numeric amount": `[{"customer_group_id": 1, "min_amount": "lots"}]`,
		"unknown version":    `{"version": 7, "rules": []}`,
		"not a list":         `{"version": 1, "rules": {"customer_group_id": 1}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRuleSet(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedConfig), "expected ErrMalformedConfig, got %v", err)
		})
	}
}

func TestRuleSetLookup_FirstMatchWins(t *testing.T) {
	rules := RuleSet{
		{GroupID: 2, MinAmount: 100},
		{GroupID: 2, MinAmount: 999},
		{GroupID: 5, MinAmount: 10},
	}
	assert.Equal(t, 100.0, rules.Lookup(2))
	assert.Equal(t, 10.0, rules.Lookup(5))
}

func TestRuleSetLookup_NoMatchDefaultsToZero(t *testing.T) {
	rules := RuleSet{{GroupID: 1, MinAmount: 100}}
	assert.Equal(t, 0.0, rules.Lookup(7))
	assert.Equal(t, 0.0, RuleSet{}.Lookup(0))
}

func TestRuleSetSerialize_RoundTrip(t *testing.T) {
	rules := RuleSet{
		{GroupID: 0, MinAmount: 25},
		{GroupID: 3, MinAmount: 150.75},
	}
	raw, err := rules.Serialize()
	require.NoError(t, err)

	parsed, err := ParseRuleSet(raw)
	require.NoError(t, err)
	assert.Equal(t, rules, parsed)
}
