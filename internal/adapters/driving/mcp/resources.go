package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for rulebook resources.
	uriScheme = "rulebook://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "taxonomy",
		Name:        "taxonomy",
		Description: "Rule categories and their subcategories",
		MIMEType:    "application/json",
	}, s.handleTaxonomyResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "versions/{document}",
		Name:        "document-versions",
		Description: "Saved snapshots of a document",
		MIMEType:    "application/json",
	}, s.handleVersionsResource)
}

// handleTaxonomyResource returns the live taxonomy.
func (s *Server) handleTaxonomyResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(categoriesOutput(s.ports.Taxonomy.Snapshot()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling taxonomy: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handleVersionsResource returns the snapshots of one document.
func (s *Server) handleVersionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Versions == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// rulebook://versions/{document}
	document := extractDocument(req.Params.URI)
	if document == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	listing, err := s.listVersions(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}

	data, err := json.MarshalIndent(versionsOutput(listing), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling versions: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractDocument extracts the document name from a URI like rulebook://versions/{document}.
func extractDocument(uri string) string {
	const prefix = uriScheme + "versions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	document, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return document
}
