// checkout-service/internal/application/service.go
package application

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"minorder/internal/pkg/logger"
	"minorder/internal/service/checkout/domain"
	"minorder/internal/service/checkout/domain/port"
)

// GuardService 编排一次最低下单金额判定。
// 两个结算入口共用这一个服务，差别只在跳转目标（见 redirectPathFor）。
type GuardService struct {
	config   port.ConfigStore
	cart     port.CartReader
	identity port.IdentityReader
	currency port.CurrencyService
	notices  port.NoticeSink
	audit    port.AuditTrail
	tracer   trace.Tracer
}

// NewGuardService 创建一个新的守卫服务实例。
func NewGuardService(
	config port.ConfigStore,
	cart port.CartReader,
	identity port.IdentityReader,
	currency port.CurrencyService,
	notices port.NoticeSink,
	audit port.AuditTrail,
	tracer trace.Tracer,
) *GuardService {
	return &GuardService{
		config:   config,
		cart:     cart,
		identity: identity,
		currency: currency,
		notices:  notices,
		audit:    audit,
		tracer:   tracer,
	}
}

// EvaluateEntry 对一个结算入口执行守卫判定。
//
// 流程：
//  1. 开关关闭直接放行，不再读取规则、购物车和币种。
//  2. 从会话解析客户组，未登录用 GuestGroupID。
//  3. 读取购物车基准货币小计（整数截断）。
//  4. 换算到展示货币；汇率查询失败时投递一条提示，继续用未换算金额。
//  5. 解析规则并执行核心判定；坏配置按"无规则"处理，绝不拦住所有客户。
//  6. 拦截时投递文案提示、发布审计事件，返回入口对应的跳转目标。
//
// 会话和购物车读取失败属于意外错误，原样向上抛给框架层处理。
func (s *GuardService) EvaluateEntry(ctx context.Context, req *EvaluateRequest) (*Verdict, error) {
	ctx, span := s.tracer.Start(ctx, "guard.EvaluateEntry")
	defer span.End()

	span.SetAttributes(
		attribute.String("checkout.entry", string(req.Entry)),
		attribute.String("session.id", req.SessionID),
	)

	enabled, err := s.config.GetBool(ctx, port.KeyEnabled)
	if err != nil {
		// 配置中心读不到开关时按关闭处理：宁可放行也不能把结算流程打挂
		span.RecordError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("cannot read enable flag, treating feature as disabled")
		return &Verdict{Allowed: true}, nil
	}
	if !enabled {
		return &Verdict{Allowed: true}, nil
	}

	groupID := domain.GuestGroupID
	authenticated, err := s.identity.IsAuthenticated(ctx, req.SessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if authenticated {
		groupID, err = s.identity.CurrentGroupID(ctx, req.SessionID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	span.SetAttributes(attribute.Int64("customer.group_id", groupID))

	cartAmount, err := s.cart.BaseSubtotalWithDiscount(ctx, req.SessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	// 历史行为：小计截断到整数单位再参与比较
	cartAmount = math.Trunc(cartAmount)

	baseCode, err := s.currency.BaseCurrencyCode(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	displayCode, err := s.currency.DisplayCurrencyCode(ctx, req.SessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	normalized, err := domain.Normalize(ctx, cartAmount, baseCode, displayCode, s.currency.Rate)
	if err != nil {
		// 汇率查不到不是致命错误：提示一条消息，用未换算的金额继续判定
		span.RecordError(err)
		logger.Ctx(ctx).Warn().Err(err).
			Str("base", baseCode).Str("display", displayCode).
			Msg("rate lookup failed, evaluating with unconverted amount")
		s.notices.AddErrorNotice(ctx, req.SessionID, err.Error())
	}

	rules := s.loadRules(ctx)
	template, err := s.config.GetString(ctx, port.KeyMessage)
	if err != nil {
		span.RecordError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("cannot read message template")
	}

	decision := domain.Decide(enabled, groupID, normalized, rules, template)
	span.SetAttributes(attribute.Bool("checkout.allowed", decision.Allowed))

	if decision.Allowed {
		return &Verdict{Allowed: true}, nil
	}

	s.notices.AddErrorNotice(ctx, req.SessionID, decision.RenderedMessage)
	s.audit.CheckoutBlocked(ctx, port.BlockedCheckoutEvent{
		EventID:    uuid.NewString(),
		SessionID:  req.SessionID,
		GroupID:    groupID,
		CartAmount: normalized,
		Threshold:  rules.Lookup(groupID),
		Currency:   displayCode,
		EntryPoint: string(req.Entry),
		OccurredAt: time.Now().UTC(),
	})

	logger.Ctx(ctx).Info().
		Int64("group_id", groupID).
		Float64("cart_amount", normalized).
		Str("entry", string(req.Entry)).
		Msg("checkout blocked below minimum order amount")

	return &Verdict{
		Allowed:      false,
		RedirectPath: redirectPathFor(req.Entry),
		Message:      decision.RenderedMessage,
	}, nil
}

// loadRules 实时读取并解析规则配置。
// 读取失败或配置损坏都按空规则集处理，只记错误日志。
func (s *GuardService) loadRules(ctx context.Context) domain.RuleSet {
	raw, err := s.config.GetString(ctx, port.KeyRules)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("cannot read rule configuration")
		return domain.RuleSet{}
	}
	rules, err := domain.ParseRuleSet(raw)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("rule configuration is malformed, treating as empty")
		return domain.RuleSet{}
	}
	return rules
}
