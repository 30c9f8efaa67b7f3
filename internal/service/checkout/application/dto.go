// checkout-service/internal/application/dto.go
package application

// EntryPoint 标识被守卫的结算入口。
type EntryPoint string

const (
	// EntryOnepage 是标准单地址结算入口。
	EntryOnepage EntryPoint = "onepage"
	// EntryMultishipping 是多地址配送结算入口。
	EntryMultishipping EntryPoint = "multishipping"
)

// 拦截后各入口对应的跳转目标。每次使用时取值，不持有任何可变的 URL 构造器。
const (
	RedirectCart               = "/checkout/cart"
	RedirectMultishippingAddrs = "/checkout/multishipping/addresses"
)

// EvaluateRequest 是一次守卫判定的输入。
type EvaluateRequest struct {
	SessionID string
	Entry     EntryPoint
}

// Verdict 是守卫判定的一等返回值：要么放行，要么带着提示跳转。
// 守卫不会修改购物车、规则或会话，副作用仅限于投递提示消息。
type Verdict struct {
	Allowed      bool
	RedirectPath string
	Message      string
}

// redirectPathFor 返回入口对应的拦截跳转目标。
func redirectPathFor(entry EntryPoint) string {
	if entry == EntryMultishipping {
		return RedirectMultishippingAddrs
	}
	return RedirectCart
}
