package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"anyfactor/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	DB      DBConfig
	SEC     SECConfig
	LLM     LLMConfig
	Extract ExtractConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DBConfig holds optional PostgreSQL settings for the run-history store.
// When Enabled is false the service runs without persistence.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// SECConfig holds EDGAR client settings. The SEC requires a descriptive
// User-Agent with a contact address on all requests.
type SECConfig struct {
	UserAgent      string `mapstructure:"user_agent"`
	TickersURL     string `mapstructure:"tickers_url"`
	SubmissionsURL string `mapstructure:"submissions_url"`
	ArchivesURL    string `mapstructure:"archives_url"`
	TimeoutSecs    int    `mapstructure:"timeout_secs"`
}

// LLMConfig holds settings for the language-model provider.
type LLMConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ExtractConfig holds tunables for the extraction pipeline.
type ExtractConfig struct {
	ChunkSize            int `mapstructure:"chunk_size"`
	MaxDocChars          int `mapstructure:"max_doc_chars"`
	EvidenceMaxChars     int `mapstructure:"evidence_max_chars"`
	NumericMaxTokens     int `mapstructure:"numeric_max_tokens"`
	QualitativeMaxTokens int `mapstructure:"qualitative_max_tokens"`
	ClassifierMaxTokens  int `mapstructure:"classifier_max_tokens"`
	DefaultFilingLimit   int `mapstructure:"default_filing_limit"`
}

// Load reads configuration from environment variables with the ANYFACTOR_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ANYFACTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s") // streaming responses must not be cut off
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// DB defaults (disabled unless explicitly enabled)
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "anyfactor")
	v.SetDefault("db.password", "anyfactor_secret")
	v.SetDefault("db.name", "anyfactor_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// SEC defaults
	v.SetDefault("sec.user_agent", "anyfactor-app contact@example.com")
	v.SetDefault("sec.tickers_url", "https://www.sec.gov/files/company_tickers.json")
	v.SetDefault("sec.submissions_url", "https://data.sec.gov/submissions")
	v.SetDefault("sec.archives_url", "https://www.sec.gov/Archives/edgar/data")
	v.SetDefault("sec.timeout_secs", 30)

	// LLM defaults
	v.SetDefault("llm.provider", "perplexity")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout_secs", 60)

	// Extraction defaults
	v.SetDefault("extract.chunk_size", 40000)
	v.SetDefault("extract.max_doc_chars", 200000)
	v.SetDefault("extract.evidence_max_chars", 200)
	v.SetDefault("extract.numeric_max_tokens", 60)
	v.SetDefault("extract.qualitative_max_tokens", 400)
	v.SetDefault("extract.classifier_max_tokens", 8)
	v.SetDefault("extract.default_filing_limit", 5)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "ANYFACTOR_SERVER_PORT",
		"server.read_timeout":           "ANYFACTOR_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "ANYFACTOR_SERVER_WRITE_TIMEOUT",
		"server.environment":            "ANYFACTOR_SERVER_ENVIRONMENT",
		"log.level":                     "ANYFACTOR_LOG_LEVEL",
		"log.format":                    "ANYFACTOR_LOG_FORMAT",
		"cors.allowed_origins":          "ANYFACTOR_CORS_ALLOWED_ORIGINS",
		"db.enabled":                    "ANYFACTOR_DB_ENABLED",
		"db.host":                       "ANYFACTOR_DB_HOST",
		"db.port":                       "ANYFACTOR_DB_PORT",
		"db.user":                       "ANYFACTOR_DB_USER",
		"db.password":                   "ANYFACTOR_DB_PASSWORD",
		"db.name":                       "ANYFACTOR_DB_NAME",
		"db.sslmode":                    "ANYFACTOR_DB_SSLMODE",
		"db.max_open":                   "ANYFACTOR_DB_MAX_OPEN",
		"db.max_idle":                   "ANYFACTOR_DB_MAX_IDLE",
		"sec.user_agent":                "ANYFACTOR_SEC_USER_AGENT",
		"sec.tickers_url":               "ANYFACTOR_SEC_TICKERS_URL",
		"sec.submissions_url":           "ANYFACTOR_SEC_SUBMISSIONS_URL",
		"sec.archives_url":              "ANYFACTOR_SEC_ARCHIVES_URL",
		"sec.timeout_secs":              "ANYFACTOR_SEC_TIMEOUT_SECS",
		"llm.provider":                  "ANYFACTOR_LLM_PROVIDER",
		"llm.api_key":                   "ANYFACTOR_LLM_API_KEY",
		"llm.model":                     "ANYFACTOR_LLM_MODEL",
		"llm.timeout_secs":              "ANYFACTOR_LLM_TIMEOUT_SECS",
		"extract.chunk_size":            "ANYFACTOR_EXTRACT_CHUNK_SIZE",
		"extract.max_doc_chars":         "ANYFACTOR_EXTRACT_MAX_DOC_CHARS",
		"extract.evidence_max_chars":    "ANYFACTOR_EXTRACT_EVIDENCE_MAX_CHARS",
		"extract.numeric_max_tokens":    "ANYFACTOR_EXTRACT_NUMERIC_MAX_TOKENS",
		"extract.qualitative_max_tokens": "ANYFACTOR_EXTRACT_QUALITATIVE_MAX_TOKENS",
		"extract.classifier_max_tokens": "ANYFACTOR_EXTRACT_CLASSIFIER_MAX_TOKENS",
		"extract.default_filing_limit":  "ANYFACTOR_EXTRACT_DEFAULT_FILING_LIMIT",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Viper reads comma-separated origins as a single string from env
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	if cfg.Server.Environment == "production" {
		if os.Getenv("GIN_MODE") == "" {
			_ = os.Setenv("GIN_MODE", "release")
		}
	}

	return &cfg, nil
}

// Validate fails fast on configuration that would only surface mid-request.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w (set ANYFACTOR_LLM_API_KEY)", domain.ErrMissingAPIKey)
	}
	if c.Extract.ChunkSize <= 0 {
		return fmt.Errorf("extract.chunk_size must be positive, got %d", c.Extract.ChunkSize)
	}
	if c.Extract.MaxDocChars <= 0 {
		return fmt.Errorf("extract.max_doc_chars must be positive, got %d", c.Extract.MaxDocChars)
	}
	return nil
}
