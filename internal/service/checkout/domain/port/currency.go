// checkout-service/internal/domain/port/currency.go
package port

import "context"

// CurrencyService 提供币种上下文和汇率查询。
// 基准货币是店铺级的，展示货币是会话级的（客户可以切换展示币种）。
type CurrencyService interface {
	BaseCurrencyCode(ctx context.Context) (string, error)
	DisplayCurrencyCode(ctx context.Context, sessionID string) (string, error)
	// Rate 查询 from -> to 的汇率。查询失败由调用方降级处理。
	Rate(ctx context.Context, from, to string) (float64, error)
}
