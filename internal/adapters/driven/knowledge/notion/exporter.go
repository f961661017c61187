// Package notion provides the knowledge-base exporter. Each recorded
// document becomes a page in a configured Notion database.
package notion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jomei/notionapi"

	"github.com/custodia-labs/paperbox-cli/internal/core/domain"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperbox-cli/internal/logger"
)

// Ensure Exporter implements the interface.
var _ driven.KnowledgeBase = (*Exporter)(nil)

// schemaCacheSize bounds the resolved-schema cache. One entry per database;
// a single pipeline normally uses exactly one.
const schemaCacheSize = 4

// Mapping declares which database property serves each metadata field.
// The mapping is resolved against the database schema once and cached;
// unresolved required fields produce a structured error instead of any
// name guessing.
type Mapping struct {
	// Title is the title property name (required, type title).
	Title string

	// Authors is the authors property name (type multi_select).
	Authors string

	// Keywords is the keywords property name (type multi_select).
	Keywords string

	// Abstract is the abstract property name (type rich_text).
	Abstract string

	// Conclusion is the conclusion property name (type rich_text).
	Conclusion string

	// FileURL is the document link property name (type url).
	FileURL string
}

// DefaultMapping is the property naming used when none is configured.
func DefaultMapping() Mapping {
	return Mapping{
		Title:      "Title",
		Authors:    "Authors",
		Keywords:   "Keywords",
		Abstract:   "Abstract",
		Conclusion: "Conclusion",
		FileURL:    "PDF",
	}
}

// api is the subset of the Notion client the exporter uses.
// Narrowed for testability, in the same spirit as the extractor's
// command runner.
type api interface {
	GetDatabase(ctx context.Context, id notionapi.DatabaseID) (*notionapi.Database, error)
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// clientAPI adapts *notionapi.Client to the api interface.
type clientAPI struct {
	client *notionapi.Client
}

func (c clientAPI) GetDatabase(ctx context.Context, id notionapi.DatabaseID) (*notionapi.Database, error) {
	return c.client.Database.Get(ctx, id)
}

func (c clientAPI) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	return c.client.Page.Create(ctx, req)
}

// Config holds configuration for the exporter.
type Config struct {
	// Token is the Notion integration token (required).
	Token string

	// DatabaseID is the target database (required).
	DatabaseID string

	// Mapping overrides the default property naming.
	Mapping Mapping
}

// Exporter creates knowledge-base pages for document metadata records.
// The database schema is fetched once, validated against the declared
// mapping, and cached; the cache entry is dropped on a schema-mismatch
// error so the next export re-resolves.
type Exporter struct {
	api        api
	databaseID notionapi.DatabaseID
	mapping    Mapping
	schemas    *lru.Cache[string, Mapping]
}

// NewExporter creates a Notion exporter.
func NewExporter(cfg Config) (*Exporter, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("notion: token is required")
	}
	if cfg.DatabaseID == "" {
		return nil, fmt.Errorf("notion: database ID is required")
	}
	if cfg.Mapping == (Mapping{}) {
		cfg.Mapping = DefaultMapping()
	}

	cache, err := lru.New[string, Mapping](schemaCacheSize)
	if err != nil {
		return nil, fmt.Errorf("notion: schema cache: %w", err)
	}

	return &Exporter{
		api:        clientAPI{client: notionapi.NewClient(notionapi.Token(cfg.Token))},
		databaseID: notionapi.DatabaseID(cfg.DatabaseID),
		mapping:    cfg.Mapping,
		schemas:    cache,
	}, nil
}

// NewExporterWithAPI creates an exporter over an injected API, for tests.
func NewExporterWithAPI(a api, databaseID string, mapping Mapping) *Exporter {
	cache, _ := lru.New[string, Mapping](schemaCacheSize)
	return &Exporter{
		api:        a,
		databaseID: notionapi.DatabaseID(databaseID),
		mapping:    mapping,
		schemas:    cache,
	}
}

// Export creates a page for the record and returns its identifier.
func (e *Exporter) Export(ctx context.Context, meta domain.DocumentMetadata) (string, error) {
	mapping, err := e.resolveMapping(ctx)
	if err != nil {
		return "", err
	}

	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: e.databaseID,
		},
		Properties: buildProperties(mapping, meta),
	}

	page, err := e.api.CreatePage(ctx, req)
	if err != nil {
		if isValidationError(err) {
			// The database changed under us; force a re-resolve next time.
			e.schemas.Remove(string(e.databaseID))
			return "", fmt.Errorf("%w: %w", domain.ErrSchemaMismatch, err)
		}
		return "", fmt.Errorf("create page: %w", err)
	}

	logger.Debug("knowledge-base page %s created", page.ID)
	return string(page.ID), nil
}

// resolveMapping validates the declared mapping against the live database
// schema, using the cached result when present.
func (e *Exporter) resolveMapping(ctx context.Context) (Mapping, error) {
	if cached, ok := e.schemas.Get(string(e.databaseID)); ok {
		return cached, nil
	}

	db, err := e.api.GetDatabase(ctx, e.databaseID)
	if err != nil {
		return Mapping{}, fmt.Errorf("fetch database schema: %w", err)
	}

	if err := validateMapping(e.mapping, db.Properties); err != nil {
		return Mapping{}, err
	}

	e.schemas.Add(string(e.databaseID), e.mapping)
	return e.mapping, nil
}

// validateMapping checks every declared property against the schema.
// The title property is required; the others are checked only when the
// database declares them at all.
func validateMapping(m Mapping, props notionapi.PropertyConfigs) error {
	checks := []struct {
		field    string
		property string
		wantType notionapi.PropertyConfigType
		required bool
	}{
		{"title", m.Title, notionapi.PropertyConfigTypeTitle, true},
		{"authors", m.Authors, notionapi.PropertyConfigTypeMultiSelect, false},
		{"keywords", m.Keywords, notionapi.PropertyConfigTypeMultiSelect, false},
		{"abstract", m.Abstract, notionapi.PropertyConfigTypeRichText, false},
		{"conclusion", m.Conclusion, notionapi.PropertyConfigTypeRichText, false},
		{"file URL", m.FileURL, notionapi.PropertyConfigTypeURL, false},
	}

	var problems []string
	for _, c := range checks {
		cfg, ok := props[c.property]
		if !ok {
			if c.required {
				problems = append(problems, fmt.Sprintf("%s: property %q not in database", c.field, c.property))
			}
			continue
		}
		if cfg.GetType() != c.wantType {
			problems = append(problems, fmt.Sprintf("%s: property %q has type %q, want %q",
				c.field, c.property, cfg.GetType(), c.wantType))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrSchemaMismatch, strings.Join(problems, "; "))
	}
	return nil
}

// buildProperties assembles the page property values. Only properties the
// database resolved are set; empty metadata fields still produce empty
// values so page shapes stay uniform.
func buildProperties(m Mapping, meta domain.DocumentMetadata) notionapi.Properties {
	props := notionapi.Properties{
		m.Title: notionapi.TitleProperty{
			Title: richText(meta.Title),
		},
	}
	if m.Authors != "" {
		props[m.Authors] = notionapi.MultiSelectProperty{MultiSelect: options(meta.Authors)}
	}
	if m.Keywords != "" {
		props[m.Keywords] = notionapi.MultiSelectProperty{MultiSelect: options(meta.Keywords)}
	}
	if m.Abstract != "" {
		props[m.Abstract] = notionapi.RichTextProperty{RichText: richText(meta.Abstract)}
	}
	if m.Conclusion != "" {
		props[m.Conclusion] = notionapi.RichTextProperty{RichText: richText(meta.Conclusion)}
	}
	if m.FileURL != "" && meta.FileURL != "" {
		props[m.FileURL] = notionapi.URLProperty{URL: meta.FileURL}
	}
	return props
}

func richText(s string) []notionapi.RichText {
	if s == "" {
		return []notionapi.RichText{}
	}
	return []notionapi.RichText{{Text: &notionapi.Text{Content: s}}}
}

func options(values []string) []notionapi.Option {
	opts := make([]notionapi.Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, notionapi.Option{Name: v})
	}
	return opts
}

// isValidationError reports whether the API rejected the page because the
// properties no longer match the schema.
func isValidationError(err error) bool {
	var apiErr *notionapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == "validation_error"
}
