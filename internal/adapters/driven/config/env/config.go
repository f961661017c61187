// Package env loads pipeline configuration from the environment, with an
// optional .env file and an optional TOML config file providing defaults.
// Precedence: environment > config file > built-in defaults.
package env

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/logger"
)

// DefaultHTTPAddr is the serve address when none is configured.
const DefaultHTTPAddr = ":8080"

// OAuthConfig configures the refresh-token credential for the drive.
type OAuthConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
	RefreshToken string `toml:"refresh_token"`
}

// Configured reports whether a refresh-token flow can run.
func (c OAuthConfig) Configured() bool {
	return c.ClientID != "" && c.TokenURL != "" && c.RefreshToken != ""
}

// LLMConfig configures the optional model credential.
type LLMConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// NotionConfig configures the optional knowledge-base export.
type NotionConfig struct {
	Token      string `toml:"token"`
	DatabaseID string `toml:"database_id"`

	// Property name overrides for the declared mapping.
	TitleProp      string `toml:"title_prop"`
	AuthorsProp    string `toml:"authors_prop"`
	KeywordsProp   string `toml:"keywords_prop"`
	AbstractProp   string `toml:"abstract_prop"`
	ConclusionProp string `toml:"conclusion_prop"`
	FileURLProp    string `toml:"file_url_prop"`
}

// Configured reports whether the knowledge-base export is enabled.
func (c NotionConfig) Configured() bool {
	return c.Token != "" && c.DatabaseID != ""
}

// Config aggregates everything the CLI wires at startup.
type Config struct {
	Settings domain.Settings

	// HTTPAddr is the listen address for paperbox serve.
	HTTPAddr string

	// DriveBaseURL overrides the drive API endpoint.
	DriveBaseURL string

	// DriveToken is a static bearer for one-shot CLI runs.
	DriveToken string

	OAuth  OAuthConfig
	LLM    LLMConfig
	Notion NotionConfig
}

// fileConfig is the TOML config file shape (~/.paperbox/config.toml).
type fileConfig struct {
	InboxPath       string `toml:"inbox_path"`
	ProcessedPath   string `toml:"processed_path"`
	ErrorsPath      string `toml:"errors_path"`
	LedgerPath      string `toml:"ledger_path"`
	BatchSize       int    `toml:"batch_size"`
	Extension       string `toml:"extension"`
	ChunkSize       int64  `toml:"chunk_size"`
	ErrorsOnFailure bool   `toml:"errors_on_failure"`

	HTTPAddr     string `toml:"http_addr"`
	DriveBaseURL string `toml:"drive_base_url"`

	OAuth  OAuthConfig  `toml:"oauth"`
	LLM    LLMConfig    `toml:"llm"`
	Notion NotionConfig `toml:"notion"`
}

// Load builds the configuration. configDir may be empty, in which case
// ~/.paperbox is used. A missing .env or config file is not an error.
func Load(configDir string) (*Config, error) {
	// Best-effort: a missing .env file is the normal case.
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded: %v", err)
	}

	file := loadFile(configDir)

	cfg := &Config{
		Settings: domain.Settings{
			InboxPath:       pick("PAPERBOX_INBOX_PATH", file.InboxPath),
			ProcessedPath:   pick("PAPERBOX_PROCESSED_PATH", file.ProcessedPath),
			ErrorsPath:      pick("PAPERBOX_ERRORS_PATH", file.ErrorsPath),
			LedgerPath:      pick("PAPERBOX_LEDGER_PATH", file.LedgerPath),
			BatchSize:       pickInt("PAPERBOX_BATCH_SIZE", file.BatchSize),
			Extension:       pick("PAPERBOX_EXTENSION", file.Extension),
			ChunkSize:       pickInt64("PAPERBOX_CHUNK_SIZE", file.ChunkSize),
			ErrorsOnFailure: pickBool("PAPERBOX_ERRORS_ON_FAILURE", file.ErrorsOnFailure),
		},
		HTTPAddr:     pick("PAPERBOX_ADDR", file.HTTPAddr),
		DriveBaseURL: pick("PAPERBOX_DRIVE_BASE_URL", file.DriveBaseURL),
		DriveToken:   os.Getenv("PAPERBOX_DRIVE_TOKEN"),
		OAuth: OAuthConfig{
			ClientID:     pick("PAPERBOX_OAUTH_CLIENT_ID", file.OAuth.ClientID),
			ClientSecret: pick("PAPERBOX_OAUTH_CLIENT_SECRET", file.OAuth.ClientSecret),
			TokenURL:     pick("PAPERBOX_OAUTH_TOKEN_URL", file.OAuth.TokenURL),
			RefreshToken: pick("PAPERBOX_OAUTH_REFRESH_TOKEN", file.OAuth.RefreshToken),
		},
		LLM: LLMConfig{
			APIKey:  pick("OPENAI_API_KEY", file.LLM.APIKey),
			BaseURL: pick("PAPERBOX_LLM_BASE_URL", file.LLM.BaseURL),
			Model:   pick("PAPERBOX_LLM_MODEL", file.LLM.Model),
		},
		Notion: NotionConfig{
			Token:          pick("NOTION_TOKEN", file.Notion.Token),
			DatabaseID:     pick("NOTION_DATABASE_ID", file.Notion.DatabaseID),
			TitleProp:      pick("NOTION_TITLE_PROP", file.Notion.TitleProp),
			AuthorsProp:    pick("NOTION_AUTHORS_PROP", file.Notion.AuthorsProp),
			KeywordsProp:   pick("NOTION_KEYWORDS_PROP", file.Notion.KeywordsProp),
			AbstractProp:   pick("NOTION_ABSTRACT_PROP", file.Notion.AbstractProp),
			ConclusionProp: pick("NOTION_CONCLUSION_PROP", file.Notion.ConclusionProp),
			FileURLProp:    pick("NOTION_FILE_URL_PROP", file.Notion.FileURLProp),
		},
	}

	cfg.Settings.Normalise()
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}
	return cfg, nil
}

// loadFile reads the TOML config file, returning zero values when the file
// is absent or unreadable.
func loadFile(configDir string) fileConfig {
	var out fileConfig

	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return out
		}
		configDir = filepath.Join(home, ".paperbox")
	}

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	if err != nil {
		return out
	}
	if err := toml.Unmarshal(data, &out); err != nil {
		logger.Warn("config file ignored: %v", err)
		return fileConfig{}
	}
	return out
}

// pick returns the environment value when set, else the fallback.
func pick(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func pickInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func pickInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func pickBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
