// checkout-service/internal/domain/decision.go
package domain

import (
	"strconv"
	"strings"
)

// 消息模板中的占位符。模板里每一处出现都会被替换。
const (
	TokenThreshold = "-conf-"
	TokenCart      = "-cart-"
)

// Decision 是门槛判定的结果。
// RenderedMessage 只在 Allowed == false 时有内容。
type Decision struct {
	Allowed         bool
	RenderedMessage string
}

// Decide 是最低下单金额的核心判定函数。单结算和多地址结算共用这一个实现。
//
//   - enabled == false 时直接放行，不做任何规则查找。
//   - 门槛取该客户组的第一条匹配规则，没有匹配则为 0（不限制）。
//   - 拦截条件: threshold >= 0 && cartAmount >= 0 && cartAmount < threshold。
//     两个非负判断是对脏数据的防御：负的门槛或负的购物车金额都不允许触发拦截，
//     不能简化成单独的 cartAmount < threshold。
//
// 纯函数：相同输入必然得到相同输出，不依赖任何请求或会话状态。
func Decide(enabled bool, groupID int64, cartAmount float64, rules RuleSet, template string) Decision {
	if !enabled {
		return Decision{Allowed: true}
	}

	threshold := rules.Lookup(groupID)

	if threshold >= 0 && cartAmount >= 0 && cartAmount < threshold {
		return Decision{
			Allowed:         false,
			RenderedMessage: RenderMessage(template, threshold, cartAmount),
		}
	}
	return Decision{Allowed: true}
}

// RenderMessage 渲染拦截提示文案：
// 把模板里的 -conf- 替换为门槛金额、-cart- 替换为（已做过货币换算的）购物车金额。
// 纯文本替换，与占位符出现的次数和顺序无关。
func RenderMessage(template string, threshold, cartAmount float64) string {
	msg := strings.ReplaceAll(template, TokenThreshold, formatAmount(threshold))
	return strings.ReplaceAll(msg, TokenCart, formatAmount(cartAmount))
}

// formatAmount 输出最短的十进制表示：40 -> "40"，30.5 -> "30.5"。
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
