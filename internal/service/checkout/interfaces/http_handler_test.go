package interfaces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"minorder/internal/service/checkout/application"
	"minorder/internal/service/checkout/domain/port"
)

// 测试替身：一个可配置的会话世界，够两个入口的端到端测试用。

type stubWorld struct {
	enabled bool
	rules   string
	message string
	groupID int64
	authed  bool
	amount  float64
	notices []string
}

func (s *stubWorld) GetBool(ctx context.Context, key string) (bool, error) { return s.enabled, nil }

func (s *stubWorld) GetString(ctx context.Context, key string) (string, error) {
	switch key {
	case port.KeyRules:
		return s.rules, nil
	case port.KeyMessage:
		return s.message, nil
	}
	return "", nil
}

func (s *stubWorld) Set(ctx context.Context, key, value string) error { return nil }

func (s *stubWorld) IsAuthenticated(ctx context.Context, sessionID string) (bool, error) {
	return s.authed, nil
}

func (s *stubWorld) CurrentGroupID(ctx context.Context, sessionID string) (int64, error) {
	return s.groupID, nil
}

func (s *stubWorld) BaseSubtotalWithDiscount(ctx context.Context, sessionID string) (float64, error) {
	return s.amount, nil
}

func (s *stubWorld) BaseCurrencyCode(ctx context.Context) (string, error) { return "USD", nil }

func (s *stubWorld) DisplayCurrencyCode(ctx context.Context, sessionID string) (string, error) {
	return "USD", nil
}

func (s *stubWorld) Rate(ctx context.Context, from, to string) (float64, error) { return 1, nil }

func (s *stubWorld) AddErrorNotice(ctx context.Context, sessionID, text string) {
	s.notices = append(s.notices, text)
}

func (s *stubWorld) CheckoutBlocked(ctx context.Context, evt port.BlockedCheckoutEvent) {}

func newTestMux(world *stubWorld) *http.ServeMux {
	guard := application.NewGuardService(world, world, world, world, world, world, otel.Tracer("test"))
	mux := http.NewServeMux()
	NewCheckoutHandler(guard).RegisterRoutes(mux)
	return mux
}

func TestGuard_BlockedRedirectsToCart(t *testing.T) {
	world := &stubWorld{
		enabled: true,
		rules:   `[{"customer_group_id": 2, "min_amount": 100}]`,
		message: "need -conf-, have -cart-",
		authed:  true,
		groupID: 2,
		amount:  40,
	}
	mux := newTestMux(world)

	req := httptest.NewRequest(http.MethodGet, "/checkout/onepage?session_id=sess-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout/cart", rec.Header().Get("Location"))
	require.Len(t, world.notices, 1)
	assert.Equal(t, "need 100, have 40", world.notices[0])
}

func TestGuard_AllowedProceedsToWrappedHandler(t *testing.T) {
	world := &stubWorld{
		enabled: true,
		rules:   `[{"customer_group_id": 2, "min_amount": 100}]`,
		message: "m",
		authed:  true,
		groupID: 2,
		amount:  150,
	}
	mux := newTestMux(world)

	req := httptest.NewRequest(http.MethodGet, "/checkout/onepage?session_id=sess-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"onepage"`))
	assert.Empty(t, world.notices)
}

func TestGuard_MultishippingRedirectsToAddresses(t *testing.T) {
	world := &stubWorld{
		enabled: true,
		rules:   `[{"customer_group_id": 0, "min_amount": 60}]`,
		message: "m",
		amount:  10,
	}
	mux := newTestMux(world)

	req := httptest.NewRequest(http.MethodGet, "/checkout/multishipping/shipping?session_id=sess-2", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout/multishipping/addresses", rec.Header().Get("Location"))
}

func TestGuard_DisabledFeaturePassesThrough(t *testing.T) {
	world := &stubWorld{enabled: false, amount: 0}
	mux := newTestMux(world)

	req := httptest.NewRequest(http.MethodGet, "/checkout/onepage", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionID_PrefersCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/checkout/onepage?session_id=from-query", nil)
	req.AddCookie(&http.Cookie{Name: "checkout_session", Value: "from-cookie"})
	assert.Equal(t, "from-cookie", sessionID(req))

	req = httptest.NewRequest(http.MethodGet, "/checkout/onepage?session_id=from-query", nil)
	assert.Equal(t, "from-query", sessionID(req))
}
