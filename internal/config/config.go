// Package config loads server configuration from an optional YAML file and
// environment variables. Secrets are always injected here, never embedded in
// source.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Auth flow variants, see internal/server/auth.
const (
	FlowStrict     = "strict"
	FlowPermissive = "permissive"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	AuthFlow   string `yaml:"auth_flow" env:"AUTH_FLOW" env-default:"strict"`
	DB         `yaml:"db"`
	HTTPServer `yaml:"http_server"`
	Auth       `yaml:"auth"`
	Media      `yaml:"media"`
}

type DB struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"shopkeeper.db"`
}

type HTTPServer struct {
	Address      string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	CORSOrigins  []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"*"`
}

type Auth struct {
	// Два независимых секрета: компрометация refresh-секрета
	// не позволяет подделывать access-токены и наоборот
	AccessSecret    string        `yaml:"access_secret" env:"ACCESS_JWT_SECRET" env-required:"true"`
	RefreshSecret   string        `yaml:"refresh_secret" env:"REFRESH_JWT_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"168h"`
}

type Media struct {
	Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT" env-default:"http://127.0.0.1:9000"`
	Region        string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	AccessKey     string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket        string `yaml:"bucket" env:"S3_BUCKET" env-default:"media"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	UploadDir     string `yaml:"upload_dir" env:"UPLOAD_DIR"` // пустое значение = os.TempDir()
}

// IsProd reports whether the server runs in production mode.
// Controls the Secure attribute of the refresh token cookie.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// MustLoad загружает конфигурацию или паникует
// Если path пустой, читаются только переменные окружения
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return config
}

// Load загружает конфигурацию из файла (если задан) и окружения
func Load(path string) (*Config, error) {
	var config Config

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &config)
	} else {
		err = cleanenv.ReadEnv(&config)
	}
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.AuthFlow != FlowStrict && c.AuthFlow != FlowPermissive {
		return fmt.Errorf("unknown auth flow %q: must be %q or %q", c.AuthFlow, FlowStrict, FlowPermissive)
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("access and refresh secrets must differ")
	}
	return nil
}
