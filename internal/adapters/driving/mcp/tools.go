package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// CategoryOutput is one category with its subcategories.
type CategoryOutput struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// ListCategoriesInput is the input schema for the list_categories tool.
type ListCategoriesInput struct {
	Query string `json:"query,omitempty" jsonschema:"case-insensitive substring of category names; empty lists all"`
}

// CategoriesOutput is the taxonomy in category order.
type CategoriesOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Count      int              `json:"count"`
}

// CategoryInput names a category, and optionally a subcategory.
type CategoryInput struct {
	Category    string `json:"category" jsonschema:"category name"`
	Subcategory string `json:"subcategory,omitempty" jsonschema:"subcategory name; empty targets the category itself"`
}

// BuildRuleInput is the input schema for the build_rule tool.
type BuildRuleInput struct {
	Category    string `json:"category" jsonschema:"category name"`
	Subcategory string `json:"subcategory" jsonschema:"subcategory name"`
	Icon        string `json:"icon,omitempty" jsonschema:"icon name to embed in the combat block"`
	HeaderOnly  bool   `json:"header_only,omitempty" jsonschema:"return only the rule header"`
}

// TextOutput carries generated text or a file path.
type TextOutput struct {
	Text string `json:"text"`
}

// ListVersionsInput is the input schema for the list_versions tool.
type ListVersionsInput struct {
	Document string `json:"document,omitempty" jsonschema:"document base name; empty lists all snapshots"`
}

// VersionOutput describes one snapshot.
type VersionOutput struct {
	Name      string `json:"name"`
	Document  string `json:"document"`
	CreatedAt int64  `json:"created_at"`
	Path      string `json:"path"`
}

// VersionsOutput is a version listing, oldest first.
type VersionsOutput struct {
	Folder   string          `json:"folder"`
	Versions []VersionOutput `json:"versions"`
}

// BacklinksInput is the input schema for the backlinks tool.
type BacklinksInput struct {
	Path string `json:"path" jsonschema:"vault path of the linked document"`
}

// BacklinkOutput is one linking document.
type BacklinkOutput struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// BacklinksOutput lists linking documents ordered by path.
type BacklinksOutput struct {
	Backlinks []BacklinkOutput `json:"backlinks"`
}

// ExportInput is the input schema for the export tool.
type ExportInput struct {
	Format   string `json:"format,omitempty" jsonschema:"pdf, markdown or text; empty uses the export.format setting"`
	Document string `json:"document,omitempty" jsonschema:"vault path to export; empty exports the taxonomy"`
	Title    string `json:"title,omitempty" jsonschema:"output file name without extension"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List rule categories and subcategories, optionally filtered by name",
	}, s.handleListCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_category",
		Description: "Add a rule category, or a subcategory when subcategory is set",
	}, s.handleAddCategory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_category",
		Description: "Remove a rule category, or a subcategory when subcategory is set",
	}, s.handleRemoveCategory)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_rule",
		Description: "Build the markdown for a rule header and combat resolution block",
	}, s.handleBuildRule)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_versions",
		Description: "List saved document snapshots, oldest first",
	}, s.handleListVersions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "backlinks",
		Description: "List documents that link to a document",
	}, s.handleBacklinks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export",
		Description: "Export the taxonomy or a document into the vault as PDF, Markdown or text",
	}, s.handleExport)
}

func (s *Server) handleListCategories(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListCategoriesInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	return nil, categoriesOutput(s.ports.Taxonomy.Filter(input.Query)), nil
}

func (s *Server) handleAddCategory(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CategoryInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	var err error
	if input.Subcategory == "" {
		err = s.ports.Taxonomy.AddCategory(input.Category)
	} else {
		err = s.ports.Taxonomy.AddSubcategory(input.Category, input.Subcategory)
	}
	if err != nil {
		return nil, CategoriesOutput{}, err
	}
	return nil, categoriesOutput(s.ports.Taxonomy.Snapshot()), nil
}

func (s *Server) handleRemoveCategory(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CategoryInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	var err error
	if input.Subcategory == "" {
		err = s.ports.Taxonomy.RemoveCategory(input.Category)
	} else {
		err = s.ports.Taxonomy.RemoveSubcategory(input.Category, input.Subcategory)
	}
	if err != nil {
		return nil, CategoriesOutput{}, err
	}
	return nil, categoriesOutput(s.ports.Taxonomy.Snapshot()), nil
}

func (s *Server) handleBuildRule(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input BuildRuleInput,
) (*mcp.CallToolResult, TextOutput, error) {
	if s.ports.Inserter == nil {
		return nil, TextOutput{}, fmt.Errorf("build_rule: %w", errUnavailable)
	}
	text, err := s.ports.Inserter.BuildHeader(input.Category, input.Subcategory)
	if err != nil {
		return nil, TextOutput{}, err
	}
	if input.HeaderOnly {
		return nil, TextOutput{Text: text}, nil
	}

	icon := domain.NoneChosen()
	req := s.ports.Inserter.IconChoice(func(r domain.ChoiceResult) { icon = r })
	resolved := false
	for i, opt := range req.Options {
		if opt.ID == input.Icon {
			req.Resolve(i)
			resolved = true
			break
		}
	}
	if !resolved {
		req.Cancel()
		if input.Icon != "" {
			return nil, TextOutput{}, fmt.Errorf("%w: unknown icon %q", domain.ErrInvalidInput, input.Icon)
		}
	}

	block, err := s.ports.Inserter.BuildCombatBlock(input.Category, input.Subcategory, icon)
	if err != nil {
		return nil, TextOutput{}, err
	}
	return nil, TextOutput{Text: block}, nil
}

func (s *Server) handleListVersions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListVersionsInput,
) (*mcp.CallToolResult, VersionsOutput, error) {
	if s.ports.Versions == nil {
		return nil, VersionsOutput{}, fmt.Errorf("list_versions: %w", errUnavailable)
	}
	listing, err := s.listVersions(ctx, input.Document)
	if err != nil {
		return nil, VersionsOutput{}, err
	}
	return nil, versionsOutput(listing), nil
}

func (s *Server) handleBacklinks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BacklinksInput,
) (*mcp.CallToolResult, BacklinksOutput, error) {
	if s.ports.Backlinks == nil {
		return nil, BacklinksOutput{}, fmt.Errorf("backlinks: %w", errUnavailable)
	}
	listing, err := s.ports.Backlinks.Backlinks(ctx, input.Path)
	if err != nil {
		return nil, BacklinksOutput{}, err
	}
	out := BacklinksOutput{Backlinks: make([]BacklinkOutput, 0, len(listing.Links))}
	for _, l := range listing.Links {
		out.Backlinks = append(out.Backlinks, BacklinkOutput{Title: l.Title, Path: l.Path})
	}
	return nil, out, nil
}

func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, TextOutput, error) {
	if s.ports.Export == nil {
		return nil, TextOutput{}, fmt.Errorf("export: %w", errUnavailable)
	}
	format, err := s.exportFormat(input.Format)
	if err != nil {
		return nil, TextOutput{}, err
	}

	var job domain.ExportJob
	if input.Document == "" {
		job = s.ports.Export.NewTaxonomyJob(format, input.Title)
	} else {
		if s.ports.Documents == nil {
			return nil, TextOutput{}, fmt.Errorf("export: %w", errUnavailable)
		}
		doc, err := s.ports.Documents.ReadDocument(ctx, input.Document)
		if err != nil {
			return nil, TextOutput{}, err
		}
		title := input.Title
		if title == "" {
			title = doc.Title()
		}
		job = s.ports.Export.NewDocumentJob(format, title, doc.Content)
	}

	name, err := s.ports.Export.ExportToVault(ctx, job)
	if err != nil {
		return nil, TextOutput{}, err
	}
	return nil, TextOutput{Text: name}, nil
}

// listVersions lists the configured version folder, optionally for one document.
func (s *Server) listVersions(ctx context.Context, document string) (domain.VersionListing, error) {
	folder := domain.DefaultVersionFolder
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil && settings.VersionFolder != "" {
			folder = settings.VersionFolder
		}
	}
	if document == "" {
		return s.ports.Versions.ListVersions(ctx, folder)
	}
	return s.ports.Versions.ListVersionsFor(ctx, folder, domain.DocumentTitle(document))
}

// exportFormat parses raw, falling back to the export.format setting when
// raw is empty.
func (s *Server) exportFormat(raw string) (domain.ExportFormat, error) {
	if raw != "" {
		return parseFormat(raw)
	}
	if s.ports.Settings != nil {
		settings, err := s.ports.Settings.Get()
		if err != nil {
			return "", err
		}
		if settings.ExportFormat.IsValid() {
			return settings.ExportFormat, nil
		}
	}
	return domain.DefaultSettings().ExportFormat, nil
}

func parseFormat(raw string) (domain.ExportFormat, error) {
	switch raw {
	case "text", "txt":
		return domain.ExportFormatPlainText, nil
	case "md":
		return domain.ExportFormatMarkdown, nil
	}
	format := domain.ExportFormat(raw)
	if !format.IsValid() {
		return "", fmt.Errorf("%w: export format %q", domain.ErrInvalidInput, raw)
	}
	return format, nil
}

func categoriesOutput(t domain.Taxonomy) CategoriesOutput {
	out := CategoriesOutput{Categories: make([]CategoryOutput, 0, t.Len())}
	for _, c := range t.Categories() {
		subs := c.Subcategories
		if subs == nil {
			subs = []string{}
		}
		out.Categories = append(out.Categories, CategoryOutput{Name: c.Name, Subcategories: subs})
	}
	out.Count = len(out.Categories)
	return out
}

func versionsOutput(l domain.VersionListing) VersionsOutput {
	out := VersionsOutput{Folder: l.Folder, Versions: make([]VersionOutput, 0, len(l.Versions))}
	for _, v := range l.Versions {
		out.Versions = append(out.Versions, VersionOutput{
			Name:      v.DerivedName,
			Document:  v.BaseName,
			CreatedAt: v.CreatedAt,
			Path:      v.Path,
		})
	}
	return out
}
