package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AI_API_KEY", "test-key")

	cfg, err := LoadConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, 5, cfg.SeederMaxAttempts)
	assert.Equal(t, SeedParsePolicyFail, cfg.SeederParsePolicy)
}

func TestLoadConfig_RequiresAPIKey(t *testing.T) {
	t.Setenv("AI_API_KEY", "")

	_, err := LoadConfig("nonexistent.env")
	assert.Error(t, err)
}

func TestLoadConfig_RejectsUnknownParsePolicy(t *testing.T) {
	t.Setenv("AI_API_KEY", "test-key")
	t.Setenv("SEEDER_PARSE_POLICY", "ignore")

	_, err := LoadConfig("nonexistent.env")
	assert.Error(t, err)
}

func TestConfig_GetMaskedDSN(t *testing.T) {
	cfg := Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "challenges_db",
		DBSSLMode:  "disable",
	}

	masked := cfg.GetMaskedDSN()
	assert.NotContains(t, masked, "secret")
	assert.Contains(t, masked, "app")
	assert.Contains(t, masked, "challenges_db")
}
