package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog/log"
	"github.com/sigap/sigap-server/controllers"
	"github.com/sigap/sigap-server/providers/email"
	"github.com/sigap/sigap-server/utils-go"
)

type Config struct {
	Port            string       `env:"LISTEN_ADDR" envDefault:":3002"`
	Timeout         uint64       `env:"TIMEOUT" envDefault:"10"`
	ReadBufferSize  int          `env:"READ_BUFFER_SIZE" envDefault:"4096"`
	BodyLimit       int          `env:"BODY_LIMIT" envDefault:"1048576"`
	AppName         string       `env:"APP_NAME" envDefault:"Sigap Support"`
	IsProduction    bool         `env:"PRODUCTION"`
	LogLevel        string       `env:"LOG_LEVEL"`
	CookieKey       string       `env:"COOKIE_KEY"`
	CorsOrigins     string       `env:"CORS_ORIGINS" envDefault:"*"`
	Dsn             string       `env:"DSN,required"`
	StatusPolicy    string       `env:"STATUS_POLICY" envDefault:"only-active"`
	JwtPublicKey    string       `env:"JWT_PUBLIC_KEY,required"`
	BootstrapRoleId int64        `env:"BOOTSTRAP_ROLE_ID" envDefault:"1"`
	Email           email.Config `envPrefix:"EMAIL_"`
}

func Parse() (*Config, error) {
	cfg := Config{
		IsProduction: utils.ParseFlags(),
	}

	if err := env.Parse(&cfg); err != nil {
		log.Panic().Err(err).Msg("Failed to parse env config")
	}

	return &cfg, nil
}

func ProvideJwtKeys(c *Config) (*utils.JwtKeys, error) {
	return utils.ParseJwtKeys(c.JwtPublicKey, "")
}

func ProvideEmail(c *Config) *email.Config {
	return &c.Email
}

func ProvideStatusPolicy(c *Config) utils.StatusPolicy {
	return utils.ParseStatusPolicy(c.StatusPolicy)
}

func ProvideControllerOptions(c *Config) *controllers.Options {
	return &controllers.Options{
		BootstrapRoleId: c.BootstrapRoleId,
		FlatContracts:   false,
	}
}

func (c *Config) GetPort() string {
	return c.Port
}

func (c *Config) GetTimeout() int {
	return int(c.Timeout)
}

func (c *Config) GetAppName() string {
	return c.AppName
}

func (c *Config) GetIsProduction() bool {
	return c.IsProduction
}

func (c *Config) GetLogLevel() string {
	return c.LogLevel
}
