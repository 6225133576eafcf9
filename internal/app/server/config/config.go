package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath   = ".env"
	SecretKey = "SecRetKey"
	EnvLocal  = "local"
	EnvDev    = "dev"
	EnvProd   = "prod"
)

// Драйверы хранилища записей
const (
	DriverFS       = "fs"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverS3       = "s3"
)

// Режимы проверки сессионного токена
const (
	AuthNone   = "none"
	AuthLegacy = "legacy"
	AuthJWT    = "jwt"
)

type Config struct {
	Env     string
	DB      DB
	Server  Server
	Storage Storage
	S3      S3
	Auth    Auth
	Entry   Entry
	Logger  Logger
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	StaticDir       string        `env:"STATIC_DIR"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type Storage struct {
	Driver     string `env:"STORAGE_DRIVER"`
	EntriesDir string `env:"ENTRIES_DIR"`
	SQLitePath string `env:"SQLITE_PATH"`
}

type S3 struct {
	Bucket       string `env:"S3_BUCKET"`
	Region       string `env:"S3_REGION"`
	BaseEndpoint string `env:"S3_BASE_ENDPOINT"`
	AccessKey    string `env:"S3_ACCESS_KEY"`
	SecretKey    string `env:"S3_SECRET_KEY"`
}

type Auth struct {
	Mode       string        `env:"AUTH_MODE"`
	Secret     string        `env:"SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL"`
}

type Entry struct {
	ValidateDateKeys bool `env:"VALIDATE_DATE_KEYS"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// ScopeByOwner сообщает, нужно ли разделять записи по владельцу.
// Без проверки токена владелец неизвестен, приложение однопользовательское.
func (c *Config) ScopeByOwner() bool {
	return c.Auth.Mode != AuthNone
}

// MustLoad читает .env (если есть) и переменные окружения.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	return cfg
}

// Load собирает конфигурацию из переданного экземпляра viper.
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			StaticDir:       v.GetString("static_dir"),
			CORSOrigins:     splitList(v.GetString("cors_origins")),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Storage: Storage{
			Driver:     strings.ToLower(v.GetString("storage_driver")),
			EntriesDir: v.GetString("entries_dir"),
			SQLitePath: v.GetString("sqlite_path"),
		},
		S3: S3{
			Bucket:       v.GetString("s3_bucket"),
			Region:       v.GetString("s3_region"),
			BaseEndpoint: v.GetString("s3_base_endpoint"),
			AccessKey:    v.GetString("s3_access_key"),
			SecretKey:    v.GetString("s3_secret_key"),
		},
		Auth: Auth{
			Mode:       strings.ToLower(v.GetString("auth_mode")),
			Secret:     v.GetString("secret"),
			SessionTTL: v.GetDuration("session_ttl"),
		},
		Entry:  Entry{ValidateDateKeys: v.GetBool("validate_date_keys")},
		Logger: Logger{LogLevel: v.GetString("log_level")},
	}

	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = SecretKey
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":3000")
	v.SetDefault("static_dir", ".")
	v.SetDefault("cors_origins", "http://localhost:3000")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("storage_driver", DriverFS)
	v.SetDefault("entries_dir", "entries")
	v.SetDefault("sqlite_path", "notive.db")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("s3_bucket", "notive")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("auth_mode", AuthNone)
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("log_level", "info")
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverFS:
		if c.Storage.EntriesDir == "" {
			return fmt.Errorf("entries_dir не может быть пустым")
		}
	case DriverPostgres:
		if c.DB.DatabaseURI == "" {
			return fmt.Errorf("database_uri обязателен для драйвера %q", DriverPostgres)
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite_path не может быть пустым")
		}
	case DriverS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3_bucket не может быть пустым")
		}
	default:
		return fmt.Errorf("неизвестный драйвер хранилища: %q", c.Storage.Driver)
	}

	switch c.Auth.Mode {
	case AuthNone, AuthLegacy, AuthJWT:
	default:
		return fmt.Errorf("неизвестный режим авторизации: %q", c.Auth.Mode)
	}

	if c.Auth.Mode == AuthJWT && c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl должен быть положительным")
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
