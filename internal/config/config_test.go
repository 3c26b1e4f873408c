package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfredang/trip-advisor/internal/trip"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("TAVILY_API_KEY", "tav-key")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("RESEARCH_MODE", "")
	t.Setenv("RESEARCH_KEYWORDS", "")
	t.Setenv("TAVILY_DEPTH", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("LLM_RPS", "")
	t.Setenv("LLM_BURST", "")
	t.Setenv("ARTIFACT_S3_ENDPOINT", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "gem-key", cfg.LLM.APIKey)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)
	assert.Equal(t, "auto", cfg.Search.Mode)
	assert.True(t, cfg.Search.Enabled())
	assert.Equal(t, "tav-key", cfg.Search.APIKey)
	assert.Equal(t, "basic", cfg.Search.Depth)
	assert.False(t, cfg.Artifact.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("RESEARCH_MODE", "always")
	t.Setenv("RESEARCH_KEYWORDS", "typhoon, strike ,")
	t.Setenv("TAVILY_DEPTH", "advanced")
	t.Setenv("LLM_RPS", "1.5")
	t.Setenv("LLM_BURST", "3")
	t.Setenv("ARTIFACT_S3_ENDPOINT", "minio:9000")
	t.Setenv("ARTIFACT_S3_ACCESS_KEY", "ak")
	t.Setenv("ARTIFACT_S3_SECRET_KEY", "sk")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 1.5, cfg.LLM.RPS)
	assert.Equal(t, 3, cfg.LLM.Burst)
	assert.Equal(t, "always", cfg.Search.Mode)
	assert.Equal(t, []string{"typhoon", "strike"}, cfg.Search.Keywords)
	assert.Equal(t, "advanced", cfg.Search.Depth)
	assert.True(t, cfg.Artifact.Enabled)
	assert.Equal(t, "minio:9000", cfg.Artifact.Endpoint)
	assert.Equal(t, "ak", cfg.Artifact.AccessKey)
}

func TestLoadMissingGeminiKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	var cerr *trip.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "GEMINI_API_KEY", cerr.Key)
}

func TestLoadMissingTavilyKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TAVILY_API_KEY", "")

	_, err := Load()
	var cerr *trip.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "TAVILY_API_KEY", cerr.Key)
}

func TestLoadResearchOffSkipsTavilyKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TAVILY_API_KEY", "")
	t.Setenv("RESEARCH_MODE", "off")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Search.Enabled())
}

func TestLoadBadResearchMode(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("RESEARCH_MODE", "sometimes")

	_, err := Load()
	var cerr *trip.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "RESEARCH_MODE", cerr.Key)
}
