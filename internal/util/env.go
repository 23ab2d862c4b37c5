package util

import (
	"os"
	"strconv"

	"github.com/nyayarakshak/backend/pkg/logger"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file when one is present. Deployed instances
// carry real environment variables, so a missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
}

// GetEnv returns the variable's value, or "" when unset.
func GetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return ""
	}
	return value
}

// GetEnvString returns the variable's value, or the default when unset.
func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	return value
}

// GetEnvNumeric parses the variable as a float. Unset or unparseable
// values fall back to the default.
func GetEnvNumeric(key string, defaultValue int) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return float64(defaultValue)
	}
	returnValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return float64(defaultValue)
	}

	return returnValue
}

// GetEnvBool accepts the literal strings "true" and "false"; anything
// else falls back to the default.
func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	if value == "true" || value == "false" {
		return value == "true"
	}

	return defaultValue
}
