// Package config provides shared configuration utilities.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt returns the environment variable named by the key parsed as an
// int64, or fallback if it is unset or not a number.
func GetEnvInt(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// GetEnvLevel returns the log level named by the environment variable,
// or fallback if it is unset or unknown.
func GetEnvLevel(key string, fallback log.Level) log.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	level, err := log.ParseLevel(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return level
}
