// checkout-service/internal/infrastructure/adapter/session_redis_adapter.go
package adapter

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"minorder/internal/pkg/logger"
	"minorder/internal/pkg/redis"
)

// 会话数据由托管框架（店面）写入 Redis，本服务只做请求范围内的只读快照；
// 唯一的写入是 flash 提示消息。
const (
	sessionKeyPrefix = "checkout:session:"
	noticeKeyPrefix  = "checkout:notices:"

	fieldCustomerID      = "customer_id"
	fieldGroupID         = "group_id"
	fieldDisplayCurrency = "display_currency"
	fieldCartSubtotal    = "cart_subtotal"

	noticeTTL = 30 * time.Minute
)

// SessionRedisAdapter 实现了 port.IdentityReader、port.CartReader 和 port.NoticeSink。
type SessionRedisAdapter struct {
	redisClient *redis.Client
}

// NewSessionRedisAdapter 创建一个新的会话适配器实例。
func NewSessionRedisAdapter(redisClient *redis.Client) *SessionRedisAdapter {
	return &SessionRedisAdapter{redisClient: redisClient}
}

// IsAuthenticated 判断会话是否对应一个已登录客户。
func (a *SessionRedisAdapter) IsAuthenticated(ctx context.Context, sessionID string) (bool, error) {
	val, err := a.redisClient.GetClient().HGet(ctx, sessionKeyPrefix+sessionID, fieldCustomerID).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to read session authentication state")
	}
	return val != "", nil
}

// CurrentGroupID 返回已登录客户的客户组。
func (a *SessionRedisAdapter) CurrentGroupID(ctx context.Context, sessionID string) (int64, error) {
	val, err := a.redisClient.GetClient().HGet(ctx, sessionKeyPrefix+sessionID, fieldGroupID).Result()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read customer group from session")
	}
	groupID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "session carries a non-numeric group id %q", val)
	}
	return groupID, nil
}

// DisplayCurrency 返回会话当前选择的展示币种，未设置时返回空字符串。
func (a *SessionRedisAdapter) DisplayCurrency(ctx context.Context, sessionID string) (string, error) {
	val, err := a.redisClient.GetClient().HGet(ctx, sessionKeyPrefix+sessionID, fieldDisplayCurrency).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read display currency from session")
	}
	return val, nil
}

// BaseSubtotalWithDiscount 返回购物车扣除优惠后的小计（基准货币）。
// 会话里没有购物车快照视为空购物车。返回前截断到整数单位。
func (a *SessionRedisAdapter) BaseSubtotalWithDiscount(ctx context.Context, sessionID string) (float64, error) {
	val, err := a.redisClient.GetClient().HGet(ctx, sessionKeyPrefix+sessionID, fieldCartSubtotal).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to read cart subtotal from session")
	}
	subtotal, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "session carries a non-numeric cart subtotal %q", val)
	}
	return math.Trunc(subtotal), nil
}

// notice 是投递到会话里的一条 flash 提示。
type notice struct {
	ID        string    `json:"id"`
	Severity  string    `json:"severity"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AddErrorNotice 向会话投递一条错误提示。fire-and-forget：失败只记日志。
func (a *SessionRedisAdapter) AddErrorNotice(ctx context.Context, sessionID, text string) {
	payload, err := json.Marshal(notice{
		ID:        uuid.NewString(),
		Severity:  "error",
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("cannot marshal notice")
		return
	}

	key := noticeKeyPrefix + sessionID
	pipe := a.redisClient.GetClient().Pipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, noticeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("session", sessionID).Msg("failed to push notice to session")
	}
}
