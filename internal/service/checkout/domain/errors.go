// checkout-service/internal/domain/errors.go
package domain

import "github.com/pkg/errors"

// 领域层的哨兵错误。调用方用 errors.Is 判断错误类别，
// 再决定各自的降级策略（见 application 层）。
var (
	// ErrMalformedConfig 表示最低下单金额的规则配置无法解析。
	// 策略：绝不能因为一条坏配置把所有客户挡在结算页外，
	// 调用方按"未配置规则"处理并记录错误供运维排查。
	ErrMalformedConfig = errors.New("minimum order rule configuration is malformed")

	// ErrCurrencyLookup 表示汇率查询失败（币种不存在、下游不可用等）。
	// 策略：非致命。提示用户一条错误消息，继续用未换算的金额参与判定。
	ErrCurrencyLookup = errors.New("exchange rate lookup failed")
)
