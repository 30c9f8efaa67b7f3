// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger 是全局的基础 logger 实例。
// 各个服务在启动时调用 Init 完成初始化。
var Logger zerolog.Logger

func init() {
	// 在 Init 被调用之前也保证可用（例如在单元测试中）
	Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init 初始化全局 logger。
// 默认输出 JSON 到 stdout；本地调试可通过 LOG_PRETTY=true 切换为彩色控制台输出。
func Init(serviceName string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out = zerolog.New(os.Stdout)
	if os.Getenv("LOG_PRETTY") == "true" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	Logger = out.With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && level != zerolog.NoLevel {
		Logger = Logger.Level(level)
	}
}

// Ctx 返回一个附带了当前追踪上下文的 logger。
// 如果 ctx 中存在有效的 Span，日志会自动带上 trace_id 和 span_id，
// 方便在 Jaeger 和日志系统之间互相跳转。
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		l = l.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}
	return &l
}
