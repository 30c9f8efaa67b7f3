// checkout-service/internal/domain/port/cart.go
package port

import "context"

// CartReader 读取当前会话购物车的小计。
type CartReader interface {
	// BaseSubtotalWithDiscount 返回扣除优惠后的购物车小计，以店铺基准货币计。
	// 沿用历史行为：返回值已截断到整数单位，分位被丢弃。
	BaseSubtotalWithDiscount(ctx context.Context, sessionID string) (float64, error)
}
