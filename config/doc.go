// Package config loads and validates the knowledge explorer configuration
// from a JSON file with environment variable overrides.
package config
