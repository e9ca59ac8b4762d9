// Package config loads service configuration from YAML files and the
// environment.
//
// Loading order: config.yml (searched in standard locations), then an
// optional .env file, then environment variables, each layer overriding the
// previous. Every sub-config follows the ApplyDefaults/Validate pattern.
package config
