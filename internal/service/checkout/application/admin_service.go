// checkout-service/internal/application/admin_service.go
package application

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"minorder/internal/pkg/logger"
	"minorder/internal/service/checkout/domain"
	"minorder/internal/service/checkout/domain/port"
)

// ErrInvalidRule 表示后台提交的规则未通过校验。
var ErrInvalidRule = errors.New("invalid threshold rule")

// AdminService 承载后台对最低下单金额模块的管理操作。
// 数据库是规则的事实来源，保存成功后再序列化发布到配置中心，
// 守卫侧始终从配置中心实时读取。
type AdminService struct {
	rules  port.RuleRepository
	config port.ConfigStore
	tracer trace.Tracer
}

// NewAdminService 创建一个新的后台管理服务实例。
func NewAdminService(rules port.RuleRepository, config port.ConfigStore, tracer trace.Tracer) *AdminService {
	return &AdminService{rules: rules, config: config, tracer: tracer}
}

// ListRules 返回当前生效顺序下的全部规则。
func (s *AdminService) ListRules(ctx context.Context) (domain.RuleSet, error) {
	ctx, span := s.tracer.Start(ctx, "admin.ListRules")
	defer span.End()
	return s.rules.FindAll(ctx)
}

// ReplaceRules 用给定规则整体替换现有配置。
// 校验失败返回包装了 ErrInvalidRule 的错误；
// 持久化成功后发布到配置中心，发布失败会返回错误（下次保存可重试，
// 数据库与配置中心不一致的窗口由此暴露而不是被吞掉）。
func (s *AdminService) ReplaceRules(ctx context.Context, rules domain.RuleSet) error {
	ctx, span := s.tracer.Start(ctx, "admin.ReplaceRules")
	defer span.End()
	span.SetAttributes(attribute.Int("rules.count", len(rules)))

	for i, r := range rules {
		if r.GroupID < 0 {
			return errors.Wrapf(ErrInvalidRule, "rule %d: negative customer group id %d", i, r.GroupID)
		}
		if r.MinAmount < 0 {
			return errors.Wrapf(ErrInvalidRule, "rule %d: negative minimum amount", i)
		}
	}

	if err := s.rules.Replace(ctx, rules); err != nil {
		span.RecordError(err)
		return err
	}

	serialized, err := rules.Serialize()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.config.Set(ctx, port.KeyRules, serialized); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "rules saved but config publish failed")
	}

	logger.Ctx(ctx).Info().Int("count", len(rules)).Msg("threshold rules replaced and published")
	return nil
}

// UpdateSettings 更新功能开关和拦截提示模板并发布。
func (s *AdminService) UpdateSettings(ctx context.Context, enabled bool, messageTemplate string) error {
	ctx, span := s.tracer.Start(ctx, "admin.UpdateSettings")
	defer span.End()

	if err := s.config.Set(ctx, port.KeyEnabled, strconv.FormatBool(enabled)); err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.config.Set(ctx, port.KeyMessage, messageTemplate); err != nil {
		span.RecordError(err)
		return err
	}

	logger.Ctx(ctx).Info().Bool("enabled", enabled).Msg("minimum order settings published")
	return nil
}
