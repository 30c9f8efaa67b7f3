// cmd/checkout-service/main.go
package main

import (
	"context"

	"go.opentelemetry.io/otel"

	"minorder/internal/pkg/bootstrap"
	"minorder/internal/pkg/httpclient"
	"minorder/internal/pkg/logger"
	"minorder/internal/pkg/redis"
	"minorder/internal/service/checkout/application"
	"minorder/internal/service/checkout/infrastructure"
	"minorder/internal/service/checkout/infrastructure/adapter"
	"minorder/internal/service/checkout/interfaces"
)

const serviceName = "checkout-service"

func main() {
	bootstrap.Init()
	cfg := bootstrap.GetCurrentConfig()

	var audit *adapter.AuditKafkaAdapter
	var redisClient *redis.Client

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        cfg.App.Checkout.Port,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			tracer := otel.Tracer(serviceName)

			var err error
			redisClient, err = redis.NewClient(cfg.Infra.Redis.Addr)
			if err != nil {
				logger.Logger.Fatal().Err(err).Msg("failed to connect to redis")
			}

			db, err := infrastructure.NewMysqlDB(
				cfg.Infra.Mysql.Addr,
				cfg.Infra.Mysql.User,
				cfg.Infra.Mysql.Password,
				cfg.Infra.Mysql.Database,
			)
			if err != nil {
				logger.Logger.Fatal().Err(err).Msg("failed to connect to mysql")
			}

			configStore := infrastructure.NewNacosConfigStore(appCtx.Nacos)
			sessions := adapter.NewSessionRedisAdapter(redisClient)
			httpClient := httpclient.NewClient(tracer, appCtx.Nacos)
			currency := adapter.NewCurrencyAdapter(configStore, sessions, httpClient, redisClient)
			audit = adapter.NewAuditKafkaAdapter(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.AuditTopic)
			ruleRepo := infrastructure.NewGormRuleRepository(db)

			guard := application.NewGuardService(configStore, sessions, sessions, currency, sessions, audit, tracer)
			admin := application.NewAdminService(ruleRepo, configStore, tracer)

			interfaces.NewCheckoutHandler(guard).RegisterRoutes(appCtx.Mux)
			interfaces.NewAdminHandler(admin).RegisterRoutes(appCtx.Mux)
		},
		OnShutdown: func(ctx context.Context) {
			if audit != nil {
				if err := audit.Close(); err != nil {
					logger.Logger.Error().Err(err).Msg("error closing kafka writer")
				}
			}
			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					logger.Logger.Error().Err(err).Msg("error closing redis client")
				}
			}
		},
	})
}
