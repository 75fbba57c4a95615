package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	ModelServer ModelServerConfig
	Database    DatabaseConfig
	OpenAI      OpenAIConfig
	Gemini      GeminiConfig
	Recommend   RecommendConfig
	Identities  IdentitiesConfig
}

// ModelServerConfig points at the external model-serving process hosting
// the trained face and voice classifiers. An empty URL means no classifiers
// are available and both modalities fall back to the identity tables.
type ModelServerConfig struct {
	URL        string
	FaceModel  string // defaults to facial_model
	VoiceModel string // defaults to voice_verification_model
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL (optional)
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type OpenAIConfig struct {
	Token string
}

type GeminiConfig struct {
	APIKey string
}

// RecommendConfig selects the recommendation backend: "random" (default),
// "openai" or "gemini".
type RecommendConfig struct {
	Provider string
}

// IdentitiesConfig holds the closed set of enrolled identities, the alias
// table for classifier label resolution, the per-modality fallback tables
// and the product category set. Loaded once at startup from the embedded
// defaults, optionally overridden by the file named in BIOGATE_IDENTITIES.
type IdentitiesConfig struct {
	Enrolled   []string          `yaml:"enrolled"`
	Aliases    map[string]string `yaml:"aliases"`
	FaceTable  map[string]string `yaml:"face_table"`
	VoiceTable map[string]string `yaml:"voice_table"`
	Categories []string          `yaml:"categories"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() (*Config, error) {
	var identities IdentitiesConfig
	if err := yaml.Unmarshal(defaultsYAML, &identities); err != nil {
		// Embedded file, should never happen in practice.
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	if path := os.Getenv("BIOGATE_IDENTITIES"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read identities file: %w", err)
		}
		if err := yaml.Unmarshal(data, &identities); err != nil {
			return nil, fmt.Errorf("failed to parse identities file %s: %w", path, err)
		}
	}

	if len(identities.Enrolled) == 0 {
		return nil, fmt.Errorf("identities config enrolls no users")
	}
	if len(identities.Categories) == 0 {
		return nil, fmt.Errorf("identities config declares no product categories")
	}

	return &Config{
		ModelServer: ModelServerConfig{
			URL:        os.Getenv("MODEL_SERVER_URL"),
			FaceModel:  envStr("FACE_MODEL", "facial_model"),
			VoiceModel: envStr("VOICE_MODEL", "voice_verification_model"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		Recommend: RecommendConfig{
			Provider: envStr("RECOMMEND_PROVIDER", "random"),
		},
		Identities: identities,
	}, nil
}
