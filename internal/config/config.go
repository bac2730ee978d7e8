package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host         string `yaml:"host"`
		Port         int    `yaml:"port"`
		Env          string `yaml:"env"`
		PublicURL    string `yaml:"public_url"` // адрес фронтенда, куда редиректим после логина
		ReadTimeout  int    `yaml:"read_timeout"`
		WriteTimeout int    `yaml:"write_timeout"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Auth struct {
		SessionSecret string `yaml:"session_secret"`
		SessionTTL    int    `yaml:"session_ttl"` // минуты
		CookieName    string `yaml:"cookie_name"`
		CookieSecure  bool   `yaml:"cookie_secure"`
	} `yaml:"auth"`

	IdentityProvider struct {
		LoginURL  string `yaml:"login_url"`
		LogoutURL string `yaml:"logout_url"`
		Issuer    string `yaml:"issuer"`
		Secret    string `yaml:"secret"`
	} `yaml:"identity_provider"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		Type       string `yaml:"type"`      // none, local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"` // для local
		BaseURL    string `yaml:"base_url"`
		Bucket     string `yaml:"bucket"`
		Region     string `yaml:"region"`
		AccessKey  string `yaml:"access_key"`
		SecretKey  string `yaml:"secret_key"`
		Endpoint   string `yaml:"endpoint"`
		PublicRead bool   `yaml:"public_read"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"` // байты
		AllowedTypes []string `yaml:"allowed_types"`
	} `yaml:"upload"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Payments struct {
		CommissionRate float64 `yaml:"commission_rate"` // доля платформы, 0.1 = 10%
	} `yaml:"payments"`
}

var AppConfig *Config

// Load читает .env (если есть), затем yaml-файл (если есть), затем переменные окружения.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Без файла работаем только на переменных окружения
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig загружает глобальный конфиг, при ошибке процесс завершается
func LoadConfig() {
	cfg, err := Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.PublicURL, "PUBLIC_URL")

	setString(&cfg.Database.DSN, "DATABASE_URL")
	setBool(&cfg.Database.AutoMigrate, "DATABASE_AUTO_MIGRATE")

	setString(&cfg.Auth.SessionSecret, "SESSION_SECRET")
	setInt(&cfg.Auth.SessionTTL, "SESSION_TTL")
	setBool(&cfg.Auth.CookieSecure, "SESSION_COOKIE_SECURE")

	setString(&cfg.IdentityProvider.LoginURL, "IDP_LOGIN_URL")
	setString(&cfg.IdentityProvider.LogoutURL, "IDP_LOGOUT_URL")
	setString(&cfg.IdentityProvider.Issuer, "IDP_ISSUER")
	setString(&cfg.IdentityProvider.Secret, "IDP_SECRET")

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")

	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.PublicURL == "" {
		cfg.Server.PublicURL = "/"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 20
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Auth.SessionTTL == 0 {
		cfg.Auth.SessionTTL = 7 * 24 * 60
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "connect.sid"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "ConsultBR"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "none"
	}
	if cfg.Storage.Type == "local" && cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/webp", "application/pdf",
		}
	}
	if cfg.Payments.CommissionRate == 0 {
		cfg.Payments.CommissionRate = 0.1
	}
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.DSN == "" {
		missing = append(missing, "database.url")
	}
	if c.Auth.SessionSecret == "" {
		missing = append(missing, "auth.session_secret")
	}
	if c.IdentityProvider.Secret == "" {
		missing = append(missing, "identity_provider.secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config values: %s", strings.Join(missing, ", "))
	}
	if c.Payments.CommissionRate < 0 || c.Payments.CommissionRate >= 1 {
		return fmt.Errorf("payments.commission_rate must be in [0, 1), got %v", c.Payments.CommissionRate)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Auth.SessionTTL) * time.Minute
}

// EmailEnabled - без SMTP-хоста письма не отправляются
func (c *Config) EmailEnabled() bool {
	return c.Email.SMTPHost != ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
