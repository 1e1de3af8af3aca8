package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY (or API_KEY) environment variable is not set")

const (
	PreviewStoreMemory = "memory"
	PreviewStoreMinio  = "minio"
)

type Config struct {
	Port           string `mapstructure:"port"`
	LogLevel       string `mapstructure:"log_level"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`

	// memory or minio
	PreviewStore    string `mapstructure:"preview_store"`
	SessionCapacity int    `mapstructure:"session_capacity"`

	Gemini GeminiConfig `mapstructure:"gemini"`
	Minio  MinioConfig  `mapstructure:"minio"`
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE
// and the environment, in increasing priority. A missing API key is an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, err
	}

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config_file", "")
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("max_upload_bytes", 10*1024*1024)
	v.SetDefault("preview_store", PreviewStoreMemory)
	v.SetDefault("session_capacity", 1024)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "")

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.region", "us-east-1")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "joke-previews")
	v.SetDefault("minio.use_ssl", false)
}

func (c *Config) normalize() {
	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	c.PreviewStore = strings.ToLower(strings.TrimSpace(c.PreviewStore))
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
}

func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return ErrMissingAPIKey
	}

	switch c.PreviewStore {
	case PreviewStoreMemory:
	case PreviewStoreMinio:
		if c.Minio.Endpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when PREVIEW_STORE=minio")
		}
	default:
		return fmt.Errorf("unknown PREVIEW_STORE %q", c.PreviewStore)
	}
	return nil
}

// Addr is the listen address for net/http.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
