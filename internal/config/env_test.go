package config

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("INVADERS_TEST_HOST", "example.org")

	assert.Equal(t, "example.org", GetEnv("INVADERS_TEST_HOST", "fallback"))
	assert.Equal(t, "fallback", GetEnv("INVADERS_TEST_UNSET", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("INVADERS_TEST_SEED", " 42 ")
	t.Setenv("INVADERS_TEST_BAD", "forty-two")

	assert.Equal(t, int64(42), GetEnvInt("INVADERS_TEST_SEED", 7))
	assert.Equal(t, int64(7), GetEnvInt("INVADERS_TEST_BAD", 7))
	assert.Equal(t, int64(7), GetEnvInt("INVADERS_TEST_UNSET", 7))
}

func TestGetEnvLevel(t *testing.T) {
	t.Setenv("INVADERS_TEST_LEVEL", "debug")
	t.Setenv("INVADERS_TEST_BAD_LEVEL", "loud")

	assert.Equal(t, log.DebugLevel, GetEnvLevel("INVADERS_TEST_LEVEL", log.InfoLevel))
	assert.Equal(t, log.InfoLevel, GetEnvLevel("INVADERS_TEST_BAD_LEVEL", log.InfoLevel))
	assert.Equal(t, log.WarnLevel, GetEnvLevel("INVADERS_TEST_UNSET", log.WarnLevel))
}
