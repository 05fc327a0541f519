// Package config manages application configuration for the Guildhall API.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single
// source of truth. Outside production a .env file in the working
// directory is loaded first, if present.
//
// # Configuration Loading
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - AuthConfig: admin email list and first-boot seeding
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT           - HTTP server port (default: 8080)
//	SERVER_ENV            - development, production, or test
//	CORS_ALLOWED_ORIGINS  - comma-separated list of allowed origins
//	DB_HOST / DB_PORT     - SurrealDB host and port
//	DB_NAMESPACE          - database namespace (default: guildhall)
//	DB_DATABASE           - database name (default: main)
//	DB_USER / DB_PASSWORD - database credentials
//	JWT_PRIVATE_KEY_PATH  - path to the RSA signing key
//	JWT_PUBLIC_KEY_PATH   - path to the RSA verification key
//	JWT_EXPIRATION_MINS   - token lifetime in minutes (default: 1440)
//	AUTH_ADMIN_EMAILS     - comma-separated list of admin addresses
//	SEED_DEFAULTS         - seed default parties and roster on boot
package config
