package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alfredang/trip-advisor/internal/trip"
)

type Config struct {
	Port     string
	Env      string
	LLM      LLMConfig
	Search   SearchConfig
	Artifact ArtifactConfig
}

type LLMConfig struct {
	APIKey string
	Model  string
	RPS    float64
	Burst  int
}

type SearchConfig struct {
	// Mode is one of "auto" (keyword heuristic), "always", "off".
	Mode     string
	APIKey   string
	Depth    string
	Keywords []string
}

// Enabled reports whether the research step can ever run.
func (s SearchConfig) Enabled() bool { return s.Mode != "off" }

type ArtifactConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const DefaultModel = "gemini-2.5-flash-lite"

// Load reads configuration from the environment (after a best-effort
// .env load) and fails fast when a required credential is missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	llmCfg, err := loadLLMConfig()
	if err != nil {
		return nil, err
	}
	searchCfg, err := loadSearchConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		Env:      env,
		LLM:      llmCfg,
		Search:   searchCfg,
		Artifact: loadArtifactConfig(),
	}, nil
}

func loadLLMConfig() (LLMConfig, error) {
	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if key == "" {
		return LLMConfig{}, &trip.ConfigurationError{Key: "GEMINI_API_KEY", Reason: "is required"}
	}
	cfg := LLMConfig{
		APIKey: key,
		Model:  firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), DefaultModel),
	}
	if v := strings.TrimSpace(os.Getenv("LLM_RPS")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RPS = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("LLM_BURST")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Burst = n
		}
	}
	return cfg, nil
}

func loadSearchConfig() (SearchConfig, error) {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("RESEARCH_MODE")))
	switch mode {
	case "":
		mode = "auto"
	case "auto", "always", "off":
	default:
		return SearchConfig{}, &trip.ConfigurationError{Key: "RESEARCH_MODE", Reason: "must be auto, always, or off"}
	}

	cfg := SearchConfig{
		Mode:  mode,
		Depth: firstNonEmpty(strings.TrimSpace(os.Getenv("TAVILY_DEPTH")), "basic"),
	}
	if mode == "off" {
		return cfg, nil
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("TAVILY_API_KEY"))
	if cfg.APIKey == "" {
		return SearchConfig{}, &trip.ConfigurationError{Key: "TAVILY_API_KEY", Reason: "is required unless RESEARCH_MODE=off"}
	}
	if v := strings.TrimSpace(os.Getenv("RESEARCH_KEYWORDS")); v != "" {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.Keywords = append(cfg.Keywords, k)
			}
		}
	}
	return cfg, nil
}

func loadArtifactConfig() ArtifactConfig {
	endpoint := strings.TrimSpace(os.Getenv("ARTIFACT_S3_ENDPOINT"))
	return ArtifactConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_BUCKET")), "trip-advisor-plans"),
		UseSSL:    parseBool(os.Getenv("ARTIFACT_S3_USE_SSL"), false),
	}
}

func parseBool(raw string, fallback bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
