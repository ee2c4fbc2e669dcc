package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// 仅用于开发环境的后台默认账号
	devAdminUsername = "admin"
	devAdminPassword = "password"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// vp LoadConfig 使用的 viper 实例，供 Watch 复用
var vp *viper.Viper

// ErrAdminCredentialsMissing 生产模式下未配置后台账号
var ErrAdminCredentialsMissing = errors.New("admin credentials must be configured in release mode")

// LoadConfig 从文件与环境变量加载配置并填充到 Cfg
func LoadConfig() error {
	v := newViper(afero.NewOsFs())
	cfg, err := load(v)
	if err != nil {
		return err
	}
	Cfg = cfg
	vp = v
	return nil
}

// newViper 在给定文件系统上查找 configs/config.yaml
func newViper(fs afero.Fs) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	return v
}

// Watch 监听配置文件，变更后重新解析并回调
// 仅日志级别这类无需重建依赖的字段适合热更新
func Watch(onChange func(*Config)) {
	if vp == nil || vp.ConfigFileUsed() == "" {
		return
	}
	vp.OnConfigChange(reloadHandler(vp, onChange))
	vp.WatchConfig()
}

func reloadHandler(v *viper.Viper, onChange func(*Config)) func(fsnotify.Event) {
	return func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			log.Error("Failed to reload configuration, keeping previous values", "file", e.Name, "err", err)
			return
		}
		log.Info("Configuration reloaded", "file", e.Name)
		onChange(cfg)
	}
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("DARUGI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("admin.username", "DARUGI_ADMIN_USERNAME", "ADMIN_USER")
	_ = v.BindEnv("admin.password", "DARUGI_ADMIN_PASSWORD", "ADMIN_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyAdminFallback(&cfg); err != nil {
		return nil, err
	}
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", 5)
	v.SetDefault("server.gzip", true)

	v.SetDefault("site.name", "스토리 다루기")
	v.SetDefault("site.base_url", "https://story-darugi.com")
	v.SetDefault("site.description", "일상의 모든 순간을 기록하고 공유하는 공간, 스토리 다루기입니다.")
	v.SetDefault("site.default_image", "https://images.unsplash.com/photo-1499750310159-5b5f2269a2d3?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&h=630&q=80")
	v.SetDefault("site.locale", "ko_KR")
	v.SetDefault("site.minify_html", true)
	v.SetDefault("site.highlight_style", "github")
	v.SetDefault("site.unsafe_html", false)

	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.password_hash", "")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.slow_threshold", 200)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.remote_index", "logstash-darugi")
}

// applyAdminFallback 开发模式下补齐默认账号，生产模式下缺失则报错
func applyAdminFallback(cfg *Config) error {
	hasSecret := cfg.Admin.Password != "" || cfg.Admin.PasswordHash != ""
	if cfg.Admin.Username != "" && hasSecret {
		return nil
	}
	if cfg.Server.IsRelease() {
		return ErrAdminCredentialsMissing
	}
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = devAdminUsername
	}
	if !hasSecret {
		cfg.Admin.Password = devAdminPassword
	}
	return nil
}
