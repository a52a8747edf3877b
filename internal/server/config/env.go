package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the environment variables recognized by the service.
// Pointer fields distinguish "unset" from an explicit zero value.
type envConfig struct {
	EndpointAddr             *string `env:"SERVER_ADDRESS"`
	DatabaseDSN              *string `env:"DATABASE_URL"`
	SecretKey                *string `env:"SECRET_KEY"`
	AccessTokenExpireMinutes *int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	BcryptCost               *int    `env:"BCRYPT_COST"`
	CORSOrigins              *string `env:"CORS_ORIGINS"`
}

// parseEnv overlays values from environment variables onto the Config.
// Unset variables leave the current values untouched.
func parseEnv(config *Config) {
	e := &envConfig{}
	if err := env.Parse(e); err != nil {
		panic(err)
	}

	if e.EndpointAddr != nil {
		config.EndpointAddr = *e.EndpointAddr
	}
	if e.DatabaseDSN != nil {
		config.DatabaseDSN = *e.DatabaseDSN
	}
	if e.SecretKey != nil {
		config.SecretKey = *e.SecretKey
	}
	if e.AccessTokenExpireMinutes != nil {
		config.AccessTokenValidityDuration = time.Duration(*e.AccessTokenExpireMinutes) * time.Minute
	}
	if e.BcryptCost != nil {
		config.BcryptCost = *e.BcryptCost
	}
	if e.CORSOrigins != nil {
		config.CORSAllowedOrigins = strings.Split(*e.CORSOrigins, ",")
	}
}
