// checkout-service/internal/interfaces/admin_handler.go
package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"minorder/internal/service/checkout/application"
	"minorder/internal/service/checkout/domain"
)

// AdminHandler 暴露后台对规则表格和模块设置的管理接口。
// 鉴权由网关层统一处理，这里不重复实现。
type AdminHandler struct {
	service *application.AdminService
}

// NewAdminHandler 创建一个新的后台处理器实例。
func NewAdminHandler(service *application.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有后台路由。
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/admin/minorder/rules", h.handleRules)
	mux.HandleFunc("/admin/minorder/settings", h.handleSettings)
}

// ruleDTO 是后台接口里单条规则的表示，字段名与配置 schema 保持一致。
type ruleDTO struct {
	GroupID   int64   `json:"customer_group_id"`
	MinAmount float64 `json:"min_amount"`
}

type rulesPayload struct {
	Rules []ruleDTO `json:"rules"`
}

func (h *AdminHandler) handleRules(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	switch r.Method {
	case http.MethodGet:
		rules, err := h.service.ListRules(ctx)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out := rulesPayload{Rules: make([]ruleDTO, len(rules))}
		for i, rule := range rules {
			out.Rules[i] = ruleDTO{GroupID: rule.GroupID, MinAmount: rule.MinAmount}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)

	case http.MethodPut:
		var payload rulesPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		rules := make(domain.RuleSet, len(payload.Rules))
		for i, dto := range payload.Rules {
			rules[i] = domain.ThresholdRule{GroupID: dto.GroupID, MinAmount: dto.MinAmount}
		}
		if err := h.service.ReplaceRules(ctx, rules); err != nil {
			if errors.Is(err, application.ErrInvalidRule) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type settingsPayload struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

func (h *AdminHandler) handleSettings(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.service.UpdateSettings(ctx, payload.Enabled, payload.Message); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
