package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	envLocal       = "local"
	localJWTSecret = "change-me"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"dev"`
	Server    HTTPServer      `yaml:"server" env-prefix:"SERVER_"`
	Postgres  PostgresConfig  `yaml:"postgres" env-prefix:"PG_"`
	Auth      AuthConfig      `yaml:"auth" env-prefix:"AUTH_"`
	Tasks     TasksConfig     `yaml:"tasks" env-prefix:"TASK_"`
	Schedule  ScheduleConfig  `yaml:"schedule" env-prefix:"SCHEDULE_"`
	Redis     RedisConfig     `yaml:"redis" env-prefix:"REDIS_"`
	Files     FilesConfig     `yaml:"files" env-prefix:"FILES_"`
	Telemetry TelemetryConfig `yaml:"telemetry" env-prefix:"OTEL_"`
}

type HTTPServer struct {
	Port        string        `yaml:"port" env:"PORT" env-default:"8080"`
	Timeout     time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT" env-default:"60s"`
	MaxUpload   int64         `yaml:"max_upload" env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
}

type PostgresConfig struct {
	Host     string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"PORT" env-default:"5432"`
	User     string `yaml:"user" env:"USER" env-default:"postgres"`
	Password string `yaml:"password" env:"PASSWORD" env-default:"postgres"`
	DbName   string `yaml:"dbname" env:"DBNAME" env-default:"workspace_db"`
	SslMode  string `yaml:"sslmode" env:"SSLMODE" env-default:"disable"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DbName, c.SslMode)
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	Issuer     string        `yaml:"issuer" env:"ISSUER" env-default:"collab-workspace"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"720h"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

// Only ENV=local may run without a secret; it then signs with localJWTSecret.
func (c *AuthConfig) checkSecret(env string) error {
	secret := strings.TrimSpace(c.JWTSecret)

	if env == envLocal {
		if secret == "" {
			c.JWTSecret = localJWTSecret
		}
		return nil
	}

	if secret == "" || secret == localJWTSecret {
		return fmt.Errorf("AUTH_JWT_SECRET must be set to a private value when ENV=%q", env)
	}

	return nil
}

type TasksConfig struct {
	Statuses []string `yaml:"statuses" env:"STATUSES" env-separator:"," env-default:"requerimientos,todo,in-progress,testing,done"`
}

type ScheduleConfig struct {
	Timezone string `yaml:"timezone" env:"TIMEZONE" env-default:"UTC"`
}

// Location falls back to UTC for unknown zone names.
func (c ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type RedisConfig struct {
	URL      string        `yaml:"url" env:"URL"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"CACHE_TTL" env-default:"5m"`
}

type FilesConfig struct {
	Backend string `yaml:"backend" env:"BACKEND" env-default:"disk"`
	Dir     string `yaml:"dir" env:"DIR" env-default:"./uploads"`
	Bucket  string `yaml:"bucket" env:"BUCKET"`
	Prefix  string `yaml:"prefix" env:"PREFIX" env-default:"documents"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" env:"ENABLED" env-default:"false"`
	Endpoint    string `yaml:"endpoint" env:"EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME" env-default:"collab-workspace"`
}

// Load reads CONFIG_PATH when set, then lets the environment override it.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	cfg.Tasks.Statuses = normalizeStatuses(cfg.Tasks.Statuses)

	if err := cfg.Auth.checkSecret(cfg.Env); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func normalizeStatuses(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
