package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// 认证模式
const (
	AuthModeSupabase = "supabase" // 调用 Supabase /auth/v1/user 校验令牌
	AuthModeJWT      = "jwt"      // 使用项目 JWT 密钥本地校验
)

// Config 应用配置
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"5005"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBName      string `env:"DB_NAME" envDefault:"blog"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	AuthMode           string        `env:"AUTH_MODE" envDefault:"supabase"`
	AuthTimeout        time.Duration `env:"AUTH_TIMEOUT" envDefault:"10s"`
	SupabaseURL        string        `env:"SUPABASE_URL"`
	SupabaseAnonKey    string        `env:"SUPABASE_ANON_KEY"`
	SupabaseServiceKey string        `env:"SUPABASE_SERVICE_KEY"`
	JWTSecret          string        `env:"SUPABASE_JWT_SECRET"`

	StorageBucket        string `env:"STORAGE_BUCKET" envDefault:"post_thumbnail"`
	StoragePublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL"`
	UploadMaxBytes       int64  `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`

	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	}

	cfg.SupabaseURL = strings.TrimRight(cfg.SupabaseURL, "/")
	if cfg.StoragePublicBaseURL == "" && cfg.SupabaseURL != "" {
		cfg.StoragePublicBaseURL = cfg.SupabaseURL + "/storage/v1/object/public/" + cfg.StorageBucket + "/"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction 是否为生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// StorageEnabled 是否配置了对象存储
func (c *Config) StorageEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

// Validate 校验配置。缺少认证凭据在开发环境下允许启动，生产环境直接报错
func (c *Config) Validate() error {
	var missing []string
	switch c.AuthMode {
	case AuthModeSupabase:
		if c.SupabaseURL == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if c.SupabaseAnonKey == "" {
			missing = append(missing, "SUPABASE_ANON_KEY")
		}
	case AuthModeJWT:
		if c.JWTSecret == "" {
			missing = append(missing, "SUPABASE_JWT_SECRET")
		}
	default:
		return fmt.Errorf("未知的认证模式: %q", c.AuthMode)
	}

	if c.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES 必须大于 0")
	}

	if len(missing) > 0 && c.IsProduction() {
		return fmt.Errorf("生产环境缺少认证配置: %s", strings.Join(missing, ", "))
	}
	return nil
}
