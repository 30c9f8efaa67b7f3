// checkout-service/internal/domain/port/notice.go
package port

import "context"

// NoticeSink 向用户会话投递一条错误提示（flash 消息），由店面页面展示后清除。
// 投递是 fire-and-forget 的：失败只记日志，不影响请求结果。
type NoticeSink interface {
	AddErrorNotice(ctx context.Context, sessionID, text string)
}
