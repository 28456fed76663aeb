package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-g string     gRPC bind address (e.g., ":50051")
//	-d string     database DSN
//	-t int        access token validity, minutes
//	-k duration   session key sweep interval (e.g., "5m")
//	-o duration   credential store timeout (e.g., "3s")
//	-H string     password hash algorithm (sha3 or argon2id)
//	-s string     argon2id pepper
//	-r list       comma separated public HTTP routes
//	-m list       comma separated public gRPC methods
//	-u string     bootstrap administrator name
//	-p string     bootstrap administrator password
//	-l string     log level
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Token validity is accepted as an integer in minutes and then converted
//     to a time.Duration value. It is applied only when -t is given, so a
//     sub-minute value from the JSON file survives.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-t", "-k", "-o", "-H", "-s", "-r", "-m", "-u", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.DurationVar(&config.KeySweepInterval, "k", config.KeySweepInterval, "session key sweep interval")
	fs.DurationVar(&config.StoreTimeout, "o", config.StoreTimeout, "credential store timeout")
	fs.StringVar(&config.PasswordHash, "H", config.PasswordHash, "password hash algorithm (sha3, argon2id)")
	fs.StringVar(&config.PasswordPepper, "s", config.PasswordPepper, "argon2id pepper")

	publicRoutes := flagx.CSV(config.PublicRoutes)
	publicMethods := flagx.CSV(config.PublicGRPCMethods)
	fs.Var(&publicRoutes, "r", "public HTTP routes, comma separated")
	fs.Var(&publicMethods, "m", "public gRPC methods, comma separated")

	fs.StringVar(&config.AdminUser, "u", config.AdminUser, "bootstrap administrator name")
	fs.StringVar(&config.AdminPassword, "p", config.AdminPassword, "bootstrap administrator password")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
	config.PublicRoutes = []string(publicRoutes)
	config.PublicGRPCMethods = []string(publicMethods)
}
