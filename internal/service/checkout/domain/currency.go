// checkout-service/internal/domain/currency.go
package domain

import (
	"context"

	"github.com/pkg/errors"
)

// RateLookup 查询 from -> to 的汇率。实现方通常是外部汇率服务的适配器。
type RateLookup func(ctx context.Context, from, to string) (float64, error)

// Normalize 把基准货币金额换算到当前展示货币。
//
//   - base == display 时原样返回，不发起任何查询。
//   - 否则查询 lookup(display, base) 得到换算系数并相乘。
//     查询方向沿用了历史行为：加载展示货币、取其到基准货币的任意可用汇率。
//
// 查询失败时返回 (原始金额, 包装了 ErrCurrencyLookup 的错误)。
// 调用方负责降级：展示一条提示后继续用未换算的金额判定，绝不能让请求失败。
func Normalize(ctx context.Context, amount float64, base, display string, lookup RateLookup) (float64, error) {
	if base == display {
		return amount, nil
	}

	rate, err := lookup(ctx, display, base)
	if err != nil {
		return amount, errors.Wrap(ErrCurrencyLookup, err.Error())
	}
	return amount * rate, nil
}
