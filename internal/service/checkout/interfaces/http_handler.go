// checkout-service/internal/interfaces/http_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"minorder/internal/service/checkout/application"
)

const serviceName = "checkout-service"

var guardEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "checkout_guard_evaluations_total",
	Help: "Guard evaluations by checkout entry point and outcome.",
}, []string{"entry", "outcome"})

// CheckoutHandler 封装了 checkout 服务的 HTTP 处理器。
// 守卫以显式前置处理器的方式组合在受保护的入口之前：
// 要么放行调用下一个 handler，要么以一等返回值的形式短路为跳转。
type CheckoutHandler struct {
	service *application.GuardService
}

// NewCheckoutHandler 创建一个新的 HTTP 处理器实例。
func NewCheckoutHandler(service *application.GuardService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
func (h *CheckoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/checkout/onepage", h.guard(application.EntryOnepage, h.handleOnepage))
	mux.HandleFunc("/checkout/multishipping/shipping", h.guard(application.EntryMultishipping, h.handleMultishippingShipping))
}

// guard 把最低下单金额守卫套在一个结算入口前面。
func (h *CheckoutHandler) guard(entry application.EntryPoint, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propagator := otel.GetTextMapPropagator()
		ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		tracer := otel.Tracer(serviceName)
		ctx, span := tracer.Start(ctx, "checkout-service.Guard")
		defer span.End()
		span.SetAttributes(attribute.String("checkout.entry", string(entry)))

		verdict, err := h.service.EvaluateEntry(ctx, &application.EvaluateRequest{
			SessionID: sessionID(r),
			Entry:     entry,
		})
		if err != nil {
			span.RecordError(err)
			guardEvaluations.WithLabelValues(string(entry), "error").Inc()
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if !verdict.Allowed {
			guardEvaluations.WithLabelValues(string(entry), "blocked").Inc()
			span.AddEvent("checkout blocked, redirecting")
			http.Redirect(w, r, verdict.RedirectPath, http.StatusSeeOther)
			return
		}

		guardEvaluations.WithLabelValues(string(entry), "allowed").Inc()
		next(w, r.WithContext(ctx))
	}
}

// handleOnepage 是被守卫保护的单地址结算步骤。
// 真实部署中这里会转发到结算前端，演示里返回步骤标识即可。
func (h *CheckoutHandler) handleOnepage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"step": "onepage"})
}

// handleMultishippingShipping 是被守卫保护的多地址配送步骤。
func (h *CheckoutHandler) handleMultishippingShipping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"step": "multishipping_shipping"})
}

// sessionID 解析当前请求的会话标识：优先 cookie，其次查询参数（方便联调）。
func sessionID(r *http.Request) string {
	if c, err := r.Cookie("checkout_session"); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("session_id")
}
