package main

import "os"

// Config holds environment-based configuration for the MCP server
type Config struct {
	AWSRegion  string
	AWSProfile string

	// ConfigPath points at a costsift YAML config file; empty uses the
	// default location.
	ConfigPath string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		AWSRegion:  getEnvOrDefault("AWS_REGION", "us-east-1"),
		AWSProfile: os.Getenv("AWS_PROFILE"),
		ConfigPath: os.Getenv("COSTSIFT_CONFIG"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
