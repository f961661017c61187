package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/custodia-labs/paperbox-cli/internal/adapters/driven/config/env"
	"github.com/custodia-labs/paperbox-cli/internal/adapters/driven/graph"
	"github.com/custodia-labs/paperbox-cli/internal/adapters/driven/knowledge/notion"
	"github.com/custodia-labs/paperbox-cli/internal/adapters/driven/ledger/excel"
	"github.com/custodia-labs/paperbox-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/paperbox-cli/internal/adapters/driven/oauth"
	"github.com/custodia-labs/paperbox-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperbox-cli/internal/core/services"
	"github.com/custodia-labs/paperbox-cli/internal/extractors/pdf"
	"github.com/custodia-labs/paperbox-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := env.Load("")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	store := graph.NewClient(graph.Config{
		BaseURL: cfg.DriveBaseURL,
		Tokens:  driveTokens(cfg),
	})

	extractor := pdf.New()
	if err := pdf.CheckAvailable(); err != nil {
		logger.Warn("%v", err)
		logger.Warn("%s", pdf.InstallInstructions())
	}

	metadata := services.NewMetadataService(buildLLM(cfg))
	ledger := excel.NewAppender(store, cfg.Settings.LedgerPath)

	watcher := services.NewWatcher(
		cfg.Settings,
		store,
		extractor,
		metadata,
		ledger,
		buildKnowledgeBase(cfg),
	)

	cli.SetVersion(buildVersion())
	cli.SetWatchService(watcher)
	cli.SetUploader(graph.NewUploader(store, cfg.Settings.ChunkSize))
	cli.SetServeAddr(cfg.HTTPAddr)

	return cli.Execute()
}

// driveTokens picks the configured drive credential: a refresh-token flow
// when OAuth is configured, a static bearer otherwise. Either way a
// per-request token on the tick endpoint takes precedence.
func driveTokens(cfg *env.Config) driven.TokenProvider {
	if cfg.OAuth.Configured() {
		provider, err := oauth.NewRefreshTokenProvider(oauth.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     cfg.OAuth.TokenURL,
			RefreshToken: cfg.OAuth.RefreshToken,
		})
		if err != nil {
			logger.Warn("oauth credential rejected: %v", err)
		} else {
			return provider
		}
	}
	if cfg.DriveToken != "" {
		return driven.StaticTokenProvider{Token: cfg.DriveToken}
	}
	return nil
}

// buildLLM returns the model-backed metadata path, or nil when no API key
// is configured so the heuristic fallback is used instead.
func buildLLM(cfg *env.Config) driven.LLMService {
	if cfg.LLM.APIKey == "" {
		logger.Info("no model credential configured; using heuristic metadata only")
		return nil
	}

	svc, err := openai.NewLLMService(openai.LLMConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		logger.Warn("model unavailable, falling back to heuristics: %v", err)
		return nil
	}
	return svc
}

// buildKnowledgeBase returns the Notion exporter, or nil when the export
// is not configured.
func buildKnowledgeBase(cfg *env.Config) driven.KnowledgeBase {
	if !cfg.Notion.Configured() {
		return nil
	}

	exporter, err := notion.NewExporter(notion.Config{
		Token:      cfg.Notion.Token,
		DatabaseID: cfg.Notion.DatabaseID,
		Mapping:    notionMapping(cfg.Notion),
	})
	if err != nil {
		logger.Warn("knowledge-base export disabled: %v", err)
		return nil
	}
	return exporter
}

// notionMapping applies configured property-name overrides to the default
// mapping.
func notionMapping(cfg env.NotionConfig) notion.Mapping {
	mapping := notion.DefaultMapping()
	if cfg.TitleProp != "" {
		mapping.Title = cfg.TitleProp
	}
	if cfg.AuthorsProp != "" {
		mapping.Authors = cfg.AuthorsProp
	}
	if cfg.KeywordsProp != "" {
		mapping.Keywords = cfg.KeywordsProp
	}
	if cfg.AbstractProp != "" {
		mapping.Abstract = cfg.AbstractProp
	}
	if cfg.ConclusionProp != "" {
		mapping.Conclusion = cfg.ConclusionProp
	}
	if cfg.FileURLProp != "" {
		mapping.FileURL = cfg.FileURLProp
	}
	return mapping
}

// buildVersion reads the module version stamped by the build.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}
