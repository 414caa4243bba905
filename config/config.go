package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the finance assistant service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	Fraud     FraudConfig     `mapstructure:"fraud"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address      string   `mapstructure:"address"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LLMConfig groups the two text-generation providers of the fallback chain.
type LLMConfig struct {
	Local  LocalLLMConfig  `mapstructure:"local"`
	Hosted HostedLLMConfig `mapstructure:"hosted"`
}

// LocalLLMConfig configures the local model runtime (Ollama-compatible API).
type LocalLLMConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	MaxNewTokens   int           `mapstructure:"max_new_tokens"`
	Temperature    float64       `mapstructure:"temperature"`
	TopP           float64       `mapstructure:"top_p"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MinUsefulChars int           `mapstructure:"min_useful_chars"`
}

// HostedLLMConfig configures the hosted text-generation API (Gemini).
type HostedLLMConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SpeechConfig groups the speech vendor credentials.
type SpeechConfig struct {
	Deepgram   DeepgramConfig   `mapstructure:"deepgram"`
	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
}

// DeepgramConfig contains speech-to-text settings.
type DeepgramConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ElevenLabsConfig contains text-to-speech settings.
type ElevenLabsConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	VoiceID string        `mapstructure:"voice_id"`
	ModelID string        `mapstructure:"model_id"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FraudConfig contains fraud-detection vendor settings.
type FraudConfig struct {
	Groq GroqConfig `mapstructure:"groq"`
}

// GroqConfig contains the Groq chat-completions settings.
type GroqConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig selects and configures the session store backend.
type StorageConfig struct {
	Backend  string         `mapstructure:"backend"` // memory, file, redis, postgres
	File     FileConfig     `mapstructure:"file"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// FileConfig contains the JSON-file store settings.
type FileConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PostgresConfig contains Postgres connection settings.
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a postgres connection string from the configured fields.
func (p PostgresConfig) DSN() (string, error) {
	if p.URL != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.DBName == "" {
		return "", fmt.Errorf("postgres not configured (storage.postgres.host/dbname or url)")
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl), nil
}

// TelemetryConfig contains metrics settings.
type TelemetryConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

func (s StorageConfig) Validate() error {
	switch s.Backend {
	case "memory", "file", "redis", "postgres":
		return nil
	default:
		return fmt.Errorf("unsupported storage.backend: %s", s.Backend)
	}
}

// LoadConfig reads configuration from the given file (or well-known paths when
// empty) plus FINADVISOR_* environment overrides.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.address", ":10002")
	viper.SetDefault("server.allow_origins", []string{"*"})
	viper.SetDefault("llm.local.enabled", true)
	viper.SetDefault("llm.local.base_url", "http://localhost:11434")
	viper.SetDefault("llm.local.model", "granite3.1-moe:1b")
	viper.SetDefault("llm.local.max_new_tokens", 120)
	viper.SetDefault("llm.local.temperature", 0.5)
	viper.SetDefault("llm.local.top_p", 0.9)
	viper.SetDefault("llm.local.timeout", "120s")
	viper.SetDefault("llm.local.min_useful_chars", 10)
	viper.SetDefault("llm.hosted.base_url", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("llm.hosted.model", "gemini-pro")
	viper.SetDefault("llm.hosted.timeout", "30s")
	viper.SetDefault("speech.deepgram.base_url", "https://api.deepgram.com")
	viper.SetDefault("speech.deepgram.timeout", "60s")
	viper.SetDefault("speech.elevenlabs.base_url", "https://api.elevenlabs.io")
	viper.SetDefault("speech.elevenlabs.voice_id", "EXAVITQu4vr4xnSDxMaL")
	viper.SetDefault("speech.elevenlabs.model_id", "eleven_multilingual_v2")
	viper.SetDefault("speech.elevenlabs.timeout", "60s")
	viper.SetDefault("fraud.groq.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("fraud.groq.model", "llama3-8b-8192")
	viper.SetDefault("fraud.groq.timeout", "30s")
	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("storage.file.path", "sessions.json")
	viper.SetDefault("telemetry.enabled", true)
	viper.SetDefault("telemetry.namespace", "finadvisor")

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("FINADVISOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing file is fine: defaults plus env cover a full run.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	if err := config.Storage.Validate(); err != nil {
		panic(err)
	}

	return &config
}
