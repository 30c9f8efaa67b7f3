// checkout-service/internal/domain/rule.go
package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GuestGroupID 是未登录客户对应的哨兵客户组。
const GuestGroupID int64 = 0

// ThresholdRule 表示某个客户组的最低下单金额（以店铺基准货币计）。
type ThresholdRule struct {
	GroupID   int64
	MinAmount float64
}

// RuleSet 是一组按管理员配置顺序排列的 ThresholdRule。
// 同一个客户组出现多条规则时，配置顺序靠前的那条生效。
type RuleSet []ThresholdRule

// Lookup 返回第一条匹配该客户组的规则的最低金额。
// 没有匹配规则时返回 0，表示对该组不做限制。
func (rs RuleSet) Lookup(groupID int64) float64 {
	for _, r := range rs {
		if r.GroupID == groupID {
			return r.MinAmount
		}
	}
	return 0
}

// ruleEnvelope 是规则配置的版本化外层结构。
// 历史配置是一个裸 JSON 数组，等价于 version 1。
type ruleEnvelope struct {
	Version int             `json:"version"`
	Rules   json.RawMessage `json:"rules"`
}

// ruleEntry 是配置中单条规则的结构。
// 字段名统一为 customer_group_id / min_amount；
// 两个字段都接受数字或数字字符串（历史后台把所有值都存成了字符串）。
type ruleEntry struct {
	GroupID   *flexNumber `json:"customer_group_id"`
	MinAmount *flexNumber `json:"min_amount"`
}

// flexNumber 在反序列化时同时接受 JSON 数字和数字字符串。
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Errorf("not a numeric value: %q", s)
	}
	*n = flexNumber(v)
	return nil
}

// ParseRuleSet 解析序列化的规则配置。
//
// 接受两种形式：
//   - 裸 JSON 数组:  [{"customer_group_id": 1, "min_amount": 100}, ...]
//   - 版本化外层:    {"version": 1, "rules": [...]}
//
// 空白输入解析为一个空 RuleSet（对所有人不做限制）。
// 非法 JSON、未知版本、或条目缺少 customer_group_id / min_amount
// 数值字段时，返回包装了 ErrMalformedConfig 的错误。
func ParseRuleSet(raw string) (RuleSet, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RuleSet{}, nil
	}

	rulesRaw := json.RawMessage(trimmed)
	if strings.HasPrefix(trimmed, "{") {
		var env ruleEnvelope
		if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
			return nil, errors.Wrap(ErrMalformedConfig, err.Error())
		}
		if env.Version != 1 {
			return nil, errors.Wrapf(ErrMalformedConfig, "unsupported rule schema version %d", env.Version)
		}
		if len(env.Rules) == 0 {
			return RuleSet{}, nil
		}
		rulesRaw = env.Rules
	}

	var entries []ruleEntry
	if err := json.Unmarshal(rulesRaw, &entries); err != nil {
		return nil, errors.Wrap(ErrMalformedConfig, err.Error())
	}

	rules := make(RuleSet, 0, len(entries))
	for i, e := range entries {
		if e.GroupID == nil {
			return nil, errors.Wrapf(ErrMalformedConfig, "rule %d is missing customer_group_id", i)
		}
		if e.MinAmount == nil {
			return nil, errors.Wrapf(ErrMalformedConfig, "rule %d is missing min_amount", i)
		}
		rules = append(rules, ThresholdRule{
			GroupID:   int64(*e.GroupID),
			MinAmount: float64(*e.MinAmount),
		})
	}
	return rules, nil
}

// Serialize 把 RuleSet 序列化回版本化的配置格式，供后台保存时发布到配置中心。
func (rs RuleSet) Serialize() (string, error) {
	type entry struct {
		GroupID   int64   `json:"customer_group_id"`
		MinAmount float64 `json:"min_amount"`
	}
	entries := make([]entry, len(rs))
	for i, r := range rs {
		entries[i] = entry{GroupID: r.GroupID, MinAmount: r.MinAmount}
	}
	out, err := json.Marshal(struct {
		Version int     `json:"version"`
		Rules   []entry `json:"rules"`
	}{Version: 1, Rules: entries})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
