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
	"minorder/internal/service/checkout/domain"
	"minorder/internal/service/checkout/domain/port"
)

type fakeRuleRepo struct {
	rules domain.RuleSet
}

func (f *fakeRuleRepo) FindAll(ctx context.Context) (domain.RuleSet, error) {
	return f.rules, nil
}

func (f *fakeRuleRepo) Replace(ctx context.Context, rules domain.RuleSet) error {
	f.rules = rules
	return nil
}

type fakeConfigStore struct {
	published map[string]string
}

func (f *fakeConfigStore) GetBool(ctx context.Context, key string) (bool, error) { return false, nil }

func (f *fakeConfigStore) GetString(ctx context.Context, key string) (string, error) {
	return f.published[key], nil
}

func (f *fakeConfigStore) Set(ctx context.Context, key, value string) error {
	if f.published == nil {
		f.published = map[string]string{}
	}
	f.published[key] = value
	return nil
}

func newAdminMux(repo *fakeRuleRepo, store *fakeConfigStore) *http.ServeMux {
	service := application.NewAdminService(repo, store, otel.Tracer("test"))
	mux := http.NewServeMux()
	NewAdminHandler(service).RegisterRoutes(mux)
	return mux
}

func TestAdminRules_PutPersistsAndPublishes(t *testing.T) {
	repo := &fakeRuleRepo{}
	store := &fakeConfigStore{}
	mux := newAdminMux(repo, store)

	body := `{"rules": [{"customer_group_id": 2, "min_amount": 100}, {"customer_group_id": 0, "min_amount": 25}]}`
	req := httptest.NewRequest(http.MethodPut, "/admin/minorder/rules", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, repo.rules, 2)
	assert.Equal(t, int64(2), repo.rules[0].GroupID)

	// 发布到配置中心的内容必须能被守卫侧的解析器原样读回
	published := store.published[port.KeyRules]
	parsed, err := domain.ParseRuleSet(published)
	require.NoError(t, err)
	assert.Equal(t, repo.rules, parsed)
}

func TestAdminRules_PutRejectsNegativeAmount(t *testing.T) {
	mux := newAdminMux(&fakeRuleRepo{}, &fakeConfigStore{})

	body := `{"rules": [{"customer_group_id": 2, "min_amount": -5}]}`
	req := httptest.NewRequest(http.MethodPut, "/admin/minorder/rules", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRules_PutRejectsInvalidBody(t *testing.T) {
	mux := newAdminMux(&fakeRuleRepo{}, &fakeConfigStore{})

	req := httptest.NewRequest(http.MethodPut, "/admin/minorder/rules", strings.NewReader(`{"rules": [`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRules_GetListsCurrentRules(t *testing.T) {
	repo := &fakeRuleRepo{rules: domain.RuleSet{{GroupID: 3, MinAmount: 75}}}
	mux := newAdminMux(repo, &fakeConfigStore{})

	req := httptest.NewRequest(http.MethodGet, "/admin/minorder/rules", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"customer_group_id":3`)
	assert.Contains(t, rec.Body.String(), `"min_amount":75`)
}

func TestAdminSettings_PutPublishesFlagAndMessage(t *testing.T) {
	store := &fakeConfigStore{}
	mux := newAdminMux(&fakeRuleRepo{}, store)

	body := `{"enabled": true, "message": "Minimum is -conf-"}`
	req := httptest.NewRequest(http.MethodPut, "/admin/minorder/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "true", store.published[port.KeyEnabled])
	assert.Equal(t, "Minimum is -conf-", store.published[port.KeyMessage])
}

func TestAdminRules_MethodNotAllowed(t *testing.T) {
	mux := newAdminMux(&fakeRuleRepo{}, &fakeConfigStore{})

	req := httptest.NewRequest(http.MethodDelete, "/admin/minorder/rules", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
