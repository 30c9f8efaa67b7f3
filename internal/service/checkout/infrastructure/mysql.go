// checkout-service/internal/infrastructure/mysql.go
package infrastructure

import (
	"fmt"

	sqldriver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewMysqlDB 建立 MySQL 连接并迁移本服务的表结构。
// DSN 通过驱动的 Config 构造，避免手工拼接转义问题。
func NewMysqlDB(addr, user, password, database string) (*gorm.DB, error) {
	dsnCfg := sqldriver.NewConfig()
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = addr
	dsnCfg.User = user
	dsnCfg.Passwd = password
	dsnCfg.DBName = database
	dsnCfg.ParseTime = true
	dsnCfg.Params = map[string]string{"charset": "utf8mb4"}

	db, err := gorm.Open(gormmysql.Open(dsnCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql at %s: %w", addr, err)
	}

	if err := db.AutoMigrate(&MinOrderRuleModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate min_order_rules: %w", err)
	}
	return db, nil
}
