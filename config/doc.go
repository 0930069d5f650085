// Package config provides configuration loading and validation for
// browserkit applications.
//
// It uses Viper to load configuration from files and environment variables,
// supporting YAML files, .env files, and environment-specific overrides.
// Struct sections are validated with go-playground/validator tags.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.Load("automation-cli", &cfg)
//
// Environment variables override file values using underscore-separated
// paths (e.g., CONTAINER_CACHE_MAX_SIZE).
package config
