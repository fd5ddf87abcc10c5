package config

import (
	"fmt"
	"net/url"

	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type (
	APP struct {
		Name          string `envconfig:"SERVICE_NAME" default:"usermanager"`
		Host          string `envconfig:"SERVICE_HOST"`
		Port          string `envconfig:"SERVICE_PORT" default:"8080"`
		Env           string `envconfig:"SERVICE_ENV"`
		StorageDriver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	}
	DB struct {
		User     string `envconfig:"POSTGRES_USER"`
		Password string `envconfig:"POSTGRES_PASSWORD"`
		Name     string `envconfig:"POSTGRES_DB"`
		Host     string `envconfig:"POSTGRES_HOST"`
		Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	}
	Mongo struct {
		URI      string `envconfig:"MONGO_URI"`
		Database string `envconfig:"MONGO_DB" default:"usermanager"`
	}
	MQ struct {
		User         string `envconfig:"RABBITMQ_USER"`
		Password     string `envconfig:"RABBITMQ_PASSWORD"`
		Vhost        string `envconfig:"RABBITMQ_VHOST"`
		Host         string `envconfig:"RABBITMQ_HOST"`
		AmqpPort     string `envconfig:"RABBITMQ_AMQP_PORT" default:"5672"`
		Exchange     string `envconfig:"RABBITMQ_EXCHANGE" default:"users"`
		ExchangeType string `envconfig:"RABBITMQ_EXCHANGE_TYPE" default:"direct"`
		QueueName    string `envconfig:"RABBITMQ_QUEUE_NAME" default:"users.events"`
	}
	// Token is handed to the token issuer on every call; nothing reads it from
	// the environment after Load.
	Token struct {
		Secret string `envconfig:"ACCESS_TOKEN_SECRET"`
		Expiry string `envconfig:"ACCESS_TOKEN_EXPIRY" default:"15m"`
	}

	Config struct {
		App   APP
		DB    DB
		Mongo Mongo
		MQ    MQ
		Token Token
	}
)

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	switch cfg.App.StorageDriver {
	case StoragePostgres, StorageMongo:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.App.StorageDriver)
	}

	return cfg, nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) MongoURI() (string, error) {
	if c.Mongo.URI == "" || c.Mongo.Database == "" {
		return "", fmt.Errorf("incomplete Mongo config")
	}
	return c.Mongo.URI, nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
