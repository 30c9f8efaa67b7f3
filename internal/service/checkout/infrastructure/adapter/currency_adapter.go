// checkout-service/internal/infrastructure/adapter/currency_adapter.go
package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"minorder/internal/pkg/httpclient"
	"minorder/internal/pkg/logger"
	"minorder/internal/pkg/redis"
	"minorder/internal/service/checkout/domain/port"
)

const (
	ratesServiceName = "rates-service"
	ratesPath        = "/get_rate"

	rateCachePrefix = "checkout:rate:"
	rateCacheTTL    = 60 * time.Second

	defaultBaseCurrency = "USD"
)

// CurrencyAdapter 实现了 port.CurrencyService。
// 基准货币来自店铺配置，展示货币来自会话，
// 汇率通过 Nacos 发现 rates-service 查询，前面挡了一层短 TTL 的 Redis 缓存。
type CurrencyAdapter struct {
	config      port.ConfigStore
	sessions    *SessionRedisAdapter
	client      *httpclient.Client
	redisClient *redis.Client
	sf          singleflight.Group
}

// NewCurrencyAdapter 创建一个新的币种服务适配器实例。
func NewCurrencyAdapter(
	config port.ConfigStore,
	sessions *SessionRedisAdapter,
	client *httpclient.Client,
	redisClient *redis.Client,
) *CurrencyAdapter {
	return &CurrencyAdapter{
		config:      config,
		sessions:    sessions,
		client:      client,
		redisClient: redisClient,
	}
}

// BaseCurrencyCode 返回店铺的基准货币。未配置时退回默认值。
func (a *CurrencyAdapter) BaseCurrencyCode(ctx context.Context) (string, error) {
	code, err := a.config.GetString(ctx, port.KeyBaseCurrency)
	if err != nil {
		return "", errors.Wrap(err, "failed to read base currency")
	}
	if code == "" {
		return defaultBaseCurrency, nil
	}
	return code, nil
}

// DisplayCurrencyCode 返回会话选择的展示币种；会话未选择时等于基准货币。
func (a *CurrencyAdapter) DisplayCurrencyCode(ctx context.Context, sessionID string) (string, error) {
	code, err := a.sessions.DisplayCurrency(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if code == "" {
		return a.BaseCurrencyCode(ctx)
	}
	return code, nil
}

// rateResponse 是 rates-service 的响应体。
type rateResponse struct {
	Rate float64 `json:"rate"`
}

// Rate 查询 from -> to 的汇率。
// 查询路径：Redis 缓存 -> singleflight 合并并发请求 -> rates-service。
// 缓存读写失败只记日志，不影响查询结果。
func (a *CurrencyAdapter) Rate(ctx context.Context, from, to string) (float64, error) {
	cacheKey := fmt.Sprintf("%s%s:%s", rateCachePrefix, from, to)

	cached, err := a.redisClient.GetClient().Get(ctx, cacheKey).Result()
	if err == nil {
		if rate, perr := strconv.ParseFloat(cached, 64); perr == nil {
			return rate, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		logger.Ctx(ctx).Warn().Err(err).Msg("rate cache read failed")
	}

	// 同一币种对的并发查询合并为一次下游调用
	v, err, _ := a.sf.Do(cacheKey, func() (interface{}, error) {
		params := url.Values{}
		params.Set("from", from)
		params.Set("to", to)
		body, err := a.client.CallService(ctx, ratesServiceName, ratesPath, params)
		if err != nil {
			return 0.0, err
		}
		var resp rateResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return 0.0, errors.Wrap(err, "invalid response from rates service")
		}
		if resp.Rate <= 0 {
			return 0.0, errors.Errorf("rates service returned a non-positive rate for %s->%s", from, to)
		}

		if err := a.redisClient.GetClient().Set(ctx, cacheKey, strconv.FormatFloat(resp.Rate, 'f', -1, 64), rateCacheTTL).Err(); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("rate cache write failed")
		}
		return resp.Rate, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}
