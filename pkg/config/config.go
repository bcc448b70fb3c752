package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type EnvironmentName = string

const (
	DevEnvironment  EnvironmentName = "development"
	TestEnvironment EnvironmentName = "test"
	ProdEnvironment EnvironmentName = "production"
)

const (
	AppName     = "votechain-api"
	TestDBName  = "votechain_test"
	TokenIssuer = "votechain"
	DefaultPort = "8080"
)

type Config struct {
	Environment      EnvironmentName `envconfig:"APP_ENV" default:"development" validate:"oneof=development test production"`
	Port             string          `envconfig:"PORT" default:"8080" validate:"required"`
	DatabaseURL      string          `envconfig:"DATABASE_URL"`
	Database         string          `envconfig:"DATABASE" default:"votechain" validate:"required"`
	SQSQueueName     string          `envconfig:"SQS_QUEUE_NAME"`
	JWTSecret        string          `envconfig:"JWT_SECRET"`
	Difficulty       int             `envconfig:"POW_DIFFICULTY" default:"4" validate:"gte=0,lte=64"`
	BlockSize        int             `envconfig:"BLOCK_SIZE" default:"5" validate:"gte=1"`
	ShutdownTimeout  time.Duration   `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
	CORSAllowOrigins []string        `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// Load reads an optional .env file and decodes the environment into a Config.
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) UsesMongo() bool {
	return c.DatabaseURL != ""
}

func (c *Config) IsDev() bool {
	return c.Environment == DevEnvironment
}
