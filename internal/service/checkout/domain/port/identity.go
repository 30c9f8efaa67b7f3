// checkout-service/internal/domain/port/identity.go
package port

import "context"

// IdentityReader 解析当前会话的登录态和客户组。
type IdentityReader interface {
	IsAuthenticated(ctx context.Context, sessionID string) (bool, error)
	// CurrentGroupID 返回已登录客户的客户组。
	// 未登录的会话不应调用此方法，调用方应直接使用 domain.GuestGroupID。
	CurrentGroupID(ctx context.Context, sessionID string) (int64, error)
}
