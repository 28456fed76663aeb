// Package common contains shared constants and sentinel errors used across
// goldmanager components.
package common

const (
	// AuthorizationHeaderName is the HTTP header (and lower-cased gRPC metadata
	// key) that carries the bearer token.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token inside the Authorization header.
	BearerScheme = "Bearer"

	// TokenEnvName lets the CLI pick up a token without a flag.
	TokenEnvName = "GOLDMANAGER_TOKEN"
)
