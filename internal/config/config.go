// config.go
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	MongoURI     string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName  string        `envconfig:"MONGO_DB_NAME" default:"bhopal_bazaar"`
	AuthURL      string        `envconfig:"AUTH_SERVICE_URL" default:"http://localhost:3000"`
	RabbitURL    string        `envconfig:"RABBIT_URL" default:"amqp://localhost"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`

	// IngestToken, when set, is required on POST /orders/ingest. The broker
	// path does not use it.
	IngestToken string `envconfig:"INGEST_TOKEN" default:""`

	// UsePolling switches open panels to polling the store instead of (not
	// in addition to) relying on broker pushes, for deployments without
	// RabbitMQ.
	UsePolling bool `envconfig:"USE_POLLING" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
