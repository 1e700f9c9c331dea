package config

import (
	"fmt"
	"os"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"
	ENV_PATH    = ".env"

	DatabaseTypeMongo    = "mongo"
	DatabaseTypePostgres = "postgres"

	// environment overrides
	EnvPort        = "SHASHIN_PORT"
	EnvLogLevel    = "SHASHIN_LOG_LEVEL"
	EnvDBType      = "SHASHIN_DB_TYPE"
	EnvMongoDSN    = "SHASHIN_MONGO_DSN"
	EnvPostgresDSN = "SHASHIN_POSTGRES_DSN"
	EnvUploadDir   = "SHASHIN_UPLOAD_DIR"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName string          `yaml:"service_name" validate:"required"`
	LogLevel    string          `yaml:"loglevel" validate:"required"`
	Host        string          `yaml:"host"`
	Port        string          `yaml:"port" validate:"required"`
	Uploads     UploadConfig    `yaml:"uploads" validate:"required"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	CORS        CORSConfig      `yaml:"cors"`
	Security    SecurityConfig  `yaml:"security"`
	Database    Database        `yaml:"database" validate:"required"`
}

type UploadConfig struct {
	Dir            string `yaml:"dir" validate:"required"`
	PublicPrefix   string `yaml:"public_prefix" validate:"required,startswith=/"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" validate:"gt=0"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type SecurityConfig struct {
	// HashPasswords stores bcrypt hashes instead of the plaintext passwords.
	HashPasswords bool `yaml:"hash_passwords"`
}

type Database struct {
	Type string `yaml:"type" validate:"required,oneof=mongo postgres"`
	// For MongoDB
	MongoDB *MongoDBConfig `yaml:"mongodb_config" validate:"omitempty"`
	// For PostgreSQL
	Postgres *PostgresConfig `yaml:"postgres_config" validate:"omitempty"`
}

type MongoDBConfig struct {
	DSN              string             `yaml:"dsn" validate:"required"`
	Timeout          time.Duration      `yaml:"timeout"`
	UseTransactions  bool               `yaml:"use_transactions"`
	Options          MongoServerOptions `yaml:"mongo_server_options"`
	ValidCollections []string           `yaml:"valid_collections" validate:"required"`
	ValidFields      []string           `yaml:"valid_fields" validate:"required"`
}

type PostgresConfig struct {
	DSN     string                `yaml:"dsn" validate:"required"`
	Options PostgresServerOptions `yaml:"postgres_server_options"`
}

type MongoServerOptions struct {
	APIVersion           string `yaml:"api_version"`
	SetStrict            bool   `yaml:"set_strict"`
	SetDeprecationErrors bool   `yaml:"set_deprecation_errors"`
}

type PostgresServerOptions struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfig reads the YAML configuration, loads an optional .env file and applies
// environment overrides on top of the file values.
func LoadConfig(configPath, envPath string) (*ServiceConfig, error) {
	cfg, err := ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	// a missing .env file is not an error, production sets real env vars
	_ = godotenv.Load(envPath)

	ApplyEnvOverrides(cfg)
	return cfg, nil
}

// ApplyEnvOverrides replaces config values with the matching SHASHIN_* environment variables.
func ApplyEnvOverrides(cfg *ServiceConfig) {
	if v, ok := os.LookupEnv(EnvPort); ok && v != "" {
		cfg.Port = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvDBType); ok && v != "" {
		cfg.Database.Type = v
	}
	if v, ok := os.LookupEnv(EnvUploadDir); ok && v != "" {
		cfg.Uploads.Dir = v
	}
	if v, ok := os.LookupEnv(EnvMongoDSN); ok && v != "" {
		if cfg.Database.MongoDB == nil {
			cfg.Database.MongoDB = &MongoDBConfig{}
		}
		cfg.Database.MongoDB.DSN = v
	}
	if v, ok := os.LookupEnv(EnvPostgresDSN); ok && v != "" {
		if cfg.Database.Postgres == nil {
			cfg.Database.Postgres = &PostgresConfig{}
		}
		cfg.Database.Postgres.DSN = v
	}
}

// Validate runs struct validation and checks that the selected database has its config block.
func (c *ServiceConfig) Validate(validator *structValidator.Validate) error {
	if err := validator.Struct(c); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	switch c.Database.Type {
	case DatabaseTypeMongo:
		if c.Database.MongoDB == nil {
			return fmt.Errorf("validation error: mongodb_config is required for database type %s", c.Database.Type)
		}
	case DatabaseTypePostgres:
		if c.Database.Postgres == nil {
			return fmt.Errorf("validation error: postgres_config is required for database type %s", c.Database.Type)
		}
	}

	return nil
}

func BuildServerAPIOptions(cfg MongoServerOptions) *options.ServerAPIOptions {
	opts := options.ServerAPI(options.ServerAPIVersion(cfg.APIVersion))
	opts.SetStrict(cfg.SetStrict)
	opts.SetDeprecationErrors(cfg.SetDeprecationErrors)

	return opts
}

func ListToMap(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range list {
		result[item] = true
	}
	return result
}
