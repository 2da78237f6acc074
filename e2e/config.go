package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// BASE_URL of a running notifier instance; leaving it empty skips the suite
	BaseURL   string `envconfig:"BASE_URL"`
	NatsURL   string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	Subject   string `envconfig:"STREAM_SUBJECT" default:"task-notifications"`
	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret"`
	// E2E_DEBUG_JSON allows dumping full HTTP response bodies
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
