// checkout-service/internal/domain/port/audit.go
package port

import (
	"context"
	"time"
)

// BlockedCheckoutEvent 记录一次被拦截的结算尝试，供运营侧分析门槛设置是否合理。
type BlockedCheckoutEvent struct {
	EventID    string    `json:"event_id"`
	SessionID  string    `json:"session_id"`
	GroupID    int64     `json:"group_id"`
	CartAmount float64   `json:"cart_amount"`
	Threshold  float64   `json:"threshold"`
	Currency   string    `json:"currency"`
	EntryPoint string    `json:"entry_point"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditTrail 发布拦截审计事件。发布失败只记日志，绝不影响请求本身。
type AuditTrail interface {
	CheckoutBlocked(ctx context.Context, evt BlockedCheckoutEvent)
}
