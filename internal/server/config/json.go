package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/flagx"
	"github.com/dmitrijs2005/goldmanager/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// Pointer and slice fields stay nil when the key is absent, so only the keys
// present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	KeySweepInterval            *timex.Duration `json:"key_sweep_interval"`
	StoreTimeout                *timex.Duration `json:"store_timeout"`
	PasswordHash                *string         `json:"password_hash"`
	PasswordPepper              *string         `json:"password_pepper"`
	PublicRoutes                []string        `json:"public_routes"`
	PublicGRPCMethods           []string        `json:"public_grpc_methods"`
	AdminUser                   *string         `json:"admin_user"`
	AdminPassword               *string         `json:"admin_password"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path comes from the -c or -config command-line flags. If
// neither is set, no JSON file is loaded. If the file cannot be read or
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.KeySweepInterval, c.KeySweepInterval)
	setDuration(&config.StoreTimeout, c.StoreTimeout)
	setString(&config.PasswordHash, c.PasswordHash)
	setString(&config.PasswordPepper, c.PasswordPepper)
	if c.PublicRoutes != nil {
		config.PublicRoutes = c.PublicRoutes
	}
	if c.PublicGRPCMethods != nil {
		config.PublicGRPCMethods = c.PublicGRPCMethods
	}
	setString(&config.AdminUser, c.AdminUser)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}
