package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Site   SiteConfig   `mapstructure:"site"`
	Admin  AdminConfig  `mapstructure:"admin"`
	DB     DBConfig     `mapstructure:"database"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"` // debug / release / test
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
	Gzip            bool   `mapstructure:"gzip"`
}

// SiteConfig 站点展示相关配置
type SiteConfig struct {
	Name           string `mapstructure:"name"`
	BaseURL        string `mapstructure:"base_url"`
	Description    string `mapstructure:"description"`
	DefaultImage   string `mapstructure:"default_image"`
	Locale         string `mapstructure:"locale"`
	MinifyHTML     bool   `mapstructure:"minify_html"`
	HighlightStyle string `mapstructure:"highlight_style"` // chroma 主题
	UnsafeHTML     bool   `mapstructure:"unsafe_html"`     // 正文允许原始 HTML
}

// AdminConfig 后台认证配置
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"` // bcrypt，优先于明文密码
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver        string `mapstructure:"driver"` // mysql / postgres / bolt / memory
	DSN           string `mapstructure:"dsn"`
	MaxIdle       int    `mapstructure:"max_idle"`
	MaxOpen       int    `mapstructure:"max_open"`
	MaxLifetime   int    `mapstructure:"max_lifetime"`
	AutoMigrate   bool   `mapstructure:"auto_migrate"`
	SlowThreshold int    `mapstructure:"slow_threshold"` // 毫秒
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `mapstructure:"level"`
	RemoteAddr  string `mapstructure:"remote_addr"`
	RemoteIndex string `mapstructure:"remote_index"`
	RemoteToken string `mapstructure:"remote_token"`
}

// IsRelease 是否为生产模式
func (c *ServerConfig) IsRelease() bool {
	return c.Mode == "release"
}
