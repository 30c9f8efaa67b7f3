// checkout-service/internal/domain/port/config.go
package port

import "context"

// 配置中心里的业务配置项。对应历史系统的三个后台配置：
// 功能开关、序列化的分组规则、拦截提示模板。
const (
	KeyEnabled = "checkout.minorder.enabled"
	KeyRules   = "checkout.minorder.rules"
	KeyMessage = "checkout.minorder.message"
	// KeyBaseCurrency 是店铺级的基准货币，属于店铺配置而非本模块配置。
	KeyBaseCurrency = "checkout.store.base_currency"
)

// ConfigStore 是业务配置的读写端口。
// 约定：每次判定都实时读取，后台改完配置无需重启即可生效，所以实现方不做进程内缓存。
type ConfigStore interface {
	GetBool(ctx context.Context, key string) (bool, error)
	GetString(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
