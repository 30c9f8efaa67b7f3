// checkout-service/internal/infrastructure/nacos_config_store.go
package infrastructure

import (
	"context"
	"strings"

	"minorder/internal/pkg/nacos"
)

// NacosConfigStore 是 port.ConfigStore 的配置中心实现。
// 每次调用都会实时读取，配置中心的变更无需重启即可生效 —
// 这正是守卫"每次判定都重新加载配置"约定的实现基础。
type NacosConfigStore struct {
	client *nacos.Client
}

// NewNacosConfigStore 创建一个新的配置中心存取实例。
func NewNacosConfigStore(client *nacos.Client) *NacosConfigStore {
	return &NacosConfigStore{client: client}
}

// GetString 读取一个字符串配置项。配置不存在时返回空字符串。
func (s *NacosConfigStore) GetString(_ context.Context, key string) (string, error) {
	content, err := s.client.GetConfig(key)
	if err != nil {
		return "", err
	}
	return content, nil
}

// GetBool 读取一个布尔配置项。
// 历史后台把开关存成 "1"/"0"，这里同时接受 true/false 的拼写。
func (s *NacosConfigStore) GetBool(ctx context.Context, key string) (bool, error) {
	content, err := s.GetString(ctx, key)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(content)) {
	case "1", "true", "yes", "on":
		return true, nil
	default:
		return false, nil
	}
}

// Set 发布一个配置项。
func (s *NacosConfigStore) Set(_ context.Context, key, value string) error {
	return s.client.PublishConfig(key, value)
}
