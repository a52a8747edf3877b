package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/userservice/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. The token validity is expressed in minutes; after unmarshalling, its
// fields are copied into the runtime Config which uses time.Duration.
type JsonConfig struct {
	EndpointAddr            string `json:"endpoint_addr"`
	DatabaseDSN             string `json:"database_dsn"`
	SecretKey               string `json:"secret_key"`
	AccessTokenValidityMins int    `json:"access_token_validity_minutes"`
	BcryptCost              int    `json:"bcrypt_cost"`
	CORSAllowedOrigins      string `json:"cors_allowed_origins"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. Only fields present in
// the file override the current values. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityMins > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityMins) * time.Minute
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.CORSAllowedOrigins != "" {
		config.CORSAllowedOrigins = strings.Split(c.CORSAllowedOrigins, ",")
	}
}
