package database

import (
	"Darugi/internal/api/config"
	"Darugi/internal/model"
	"Darugi/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 支持的 database.driver
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
	DriverMemory   = "memory"
)

// NewGormDB 初始化并返回 *gorm.DB 实例，处理连接池配置
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(time.Duration(cfg.SlowThreshold) * time.Millisecond),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	if cfg.AutoMigrate {
		if err = db.AutoMigrate(&model.Post{}, &model.Comment{}); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	log.Info("Database connection established successfully.", "driver", cfg.Driver)
	return db, nil
}

func newDialector(cfg *config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DriverMySQL:
		dsnCfg, err := mysqldriver.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql dsn: %w", err)
		}
		dsnCfg.ParseTime = true
		// driver 将 charset 解析进私有字段，只能从原始 DSN 判断是否已指定
		if !dsnHasParam(cfg.DSN, "charset") {
			if dsnCfg.Params == nil {
				dsnCfg.Params = map[string]string{}
			}
			dsnCfg.Params["charset"] = "utf8mb4"
		}
		return mysql.New(mysql.Config{DSN: dsnCfg.FormatDSN(), DSNConfig: dsnCfg}), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// dsnHasParam DSN 查询串中是否包含指定参数
func dsnHasParam(dsn, key string) bool {
	_, query, ok := strings.Cut(dsn, "?")
	if !ok {
		return false
	}
	values, err := url.ParseQuery(query)
	return err == nil && values.Has(key)
}
