package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	GrpcAddr string `envconfig:"RELAY_GRPC_ADDR"`
	HttpAddr string `envconfig:"RELAY_HTTP_ADDR" default:"localhost:8080"`
	// Credentials of the administrator bootstrapped by the relay
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	// E2E_DEBUG_JSON allows dumping full gRPC request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
