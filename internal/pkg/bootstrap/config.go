// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"minorder/internal/pkg/logger"
)

// Config 描述了进程级的静态配置（基础设施地址等）。
// 业务配置（开关、规则、文案）不在这里，它们走配置中心，按请求实时读取。
type Config struct {
	App struct {
		Checkout struct {
			Port int `yaml:"port"`
		} `yaml:"checkout"`
		Rates struct {
			Port int `yaml:"port"`
		} `yaml:"rates"`
	} `yaml:"app"`

	Infra struct {
		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`
		Mysql struct {
			Addr     string `yaml:"addr"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Database string `yaml:"database"`
		} `yaml:"mysql"`
		Redis struct {
			Addr string `yaml:"addr"`
		} `yaml:"redis"`
		Kafka struct {
			Brokers    []string `yaml:"brokers"`
			AuditTopic string   `yaml:"audit_topic"`
		} `yaml:"kafka"`
		Nacos struct {
			ServerAddrs string `yaml:"server_addrs"`
			Namespace   string `yaml:"namespace"`
			Group       string `yaml:"group"`
		} `yaml:"nacos"`
	} `yaml:"infra"`
}

var (
	currentConfig Config
	configOnce    sync.Once
)

// Init 加载进程配置。路径可通过 CONFIG_PATH 覆盖，默认 ./configs/config.yaml。
// 找不到配置文件时退回到内置默认值 + 环境变量，保证本地开发可以零配置启动。
func Init() {
	configOnce.Do(func() {
		applyDefaults(&currentConfig)

		path := getEnv("CONFIG_PATH", "configs/config.yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Logger.Warn().Str("path", path).Err(err).
				Msg("config file not readable, using defaults and environment")
			return
		}
		if err := yaml.Unmarshal(data, &currentConfig); err != nil {
			logger.Logger.Fatal().Str("path", path).Err(err).Msg("invalid config file")
		}
	})
}

// GetCurrentConfig 返回当前进程配置。必须先调用 Init。
func GetCurrentConfig() Config {
	return currentConfig
}

func applyDefaults(c *Config) {
	c.App.Checkout.Port = 8090
	c.App.Rates.Port = 8091
	c.Infra.Jaeger.Endpoint = getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	c.Infra.Mysql.Addr = getEnv("MYSQL_ADDR", "localhost:3306")
	c.Infra.Mysql.User = getEnv("MYSQL_USER", "root")
	c.Infra.Mysql.Password = getEnv("MYSQL_PASSWORD", "root")
	c.Infra.Mysql.Database = getEnv("MYSQL_DATABASE", "minorder")
	c.Infra.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	c.Infra.Kafka.Brokers = []string{getEnv("KAFKA_BROKER", "localhost:9092")}
	c.Infra.Kafka.AuditTopic = getEnv("KAFKA_AUDIT_TOPIC", "checkout.blocked")
	c.Infra.Nacos.ServerAddrs = getEnv("NACOS_SERVER_ADDRS", "localhost:8848")
	c.Infra.Nacos.Namespace = getEnv("NACOS_NAMESPACE", "")
	c.Infra.Nacos.Group = getEnv("NACOS_GROUP", "DEFAULT_GROUP")
}

// getEnv 从环境变量中读取配置，不存在时返回默认值。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
