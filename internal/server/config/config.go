// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/common"
)

// Config holds runtime settings for the goldmanager server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses of the REST and gRPC endpoints.
//   - DatabaseDSN: postgres:// (pgx), sqlite:// or file: (SQLite) DSN. Empty keeps users in memory.
//   - AccessTokenValidityDuration: lifetime of an issued token.
//   - KeySweepInterval: how often session keys older than a token lifetime are dropped.
//   - StoreTimeout: upper bound for one credential store lookup.
//   - PasswordHash / PasswordPepper: digest algorithm (sha3 or argon2id) and the argon2id pepper.
//   - PublicRoutes / PublicGRPCMethods: paths and full method names served without a token.
//   - AdminUser / AdminPassword: account created when the user store is empty.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	AccessTokenValidityDuration time.Duration
	KeySweepInterval            time.Duration
	StoreTimeout                time.Duration
	PasswordHash                string
	PasswordPepper              string
	PublicRoutes                []string
	PublicGRPCMethods           []string
	AdminUser                   string
	AdminPassword               string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults. No administrator
// password is set, so nothing is bootstrapped until one is configured.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.KeySweepInterval = 5 * time.Minute
	c.StoreTimeout = 3 * time.Second
	c.PasswordHash = "sha3"
	c.PasswordPepper = ""
	c.PublicRoutes = []string{"/login", "/health"}
	c.PublicGRPCMethods = []string{"/grpc.health.v1.Health/Check"}
	c.AdminUser = "admin"
	c.AdminPassword = ""
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("%w: access token validity must be positive, got %s", common.ErrorValidation, c.AccessTokenValidityDuration)
	}
	if c.StoreTimeout < 0 {
		return fmt.Errorf("%w: store timeout must not be negative, got %s", common.ErrorValidation, c.StoreTimeout)
	}
	return nil
}
