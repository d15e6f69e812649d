// Package yamlio imports and exports rule taxonomies as YAML.
//
// The exported document is a versioned list, which keeps category order:
//
//	version: 1
//	categories:
//	  - name: Combat
//	    subcategories: [Melee, Ranged]
//
// Decode also accepts a plain mapping of category name to subcategories,
// taking category order from the document.
package yamlio

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// FormatVersion is written to every exported document.
const FormatVersion = 1

// Ensure Codec implements the interface.
var _ driven.TaxonomyCodec = (*Codec)(nil)

type document struct {
	Version    int        `yaml:"version"`
	Categories []category `yaml:"categories"`
}

type category struct {
	Name          string   `yaml:"name"`
	Subcategories []string `yaml:"subcategories,flow"`
}

// Codec is a YAML taxonomy codec.
type Codec struct{}

// NewCodec creates a YAML codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Encode writes t as a versioned YAML list.
func (c *Codec) Encode(t domain.Taxonomy) ([]byte, error) {
	doc := document{Version: FormatVersion}
	for _, cat := range t.Categories() {
		subs := cat.Subcategories
		if subs == nil {
			subs = []string{}
		}
		doc.Categories = append(doc.Categories, category{Name: cat.Name, Subcategories: subs})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding taxonomy: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding taxonomy: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads either document shape.
func (c *Codec) Decode(data []byte) (domain.Taxonomy, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return domain.Taxonomy{}, fmt.Errorf("%w: parsing taxonomy: %w", domain.ErrInvalidInput, err)
	}
	if len(root.Content) == 0 {
		return domain.Taxonomy{}, fmt.Errorf("%w: empty taxonomy document", domain.ErrInvalidInput)
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return domain.Taxonomy{}, fmt.Errorf("%w: taxonomy must be a mapping", domain.ErrInvalidInput)
	}

	if hasKey(top, "categories") {
		return decodeDocument(top)
	}
	return decodeMapping(top)
}

func decodeDocument(node *yaml.Node) (domain.Taxonomy, error) {
	var doc document
	if err := node.Decode(&doc); err != nil {
		return domain.Taxonomy{}, fmt.Errorf("%w: decoding taxonomy: %w", domain.ErrInvalidInput, err)
	}
	if doc.Version > FormatVersion {
		return domain.Taxonomy{}, fmt.Errorf("%w: unsupported taxonomy version %d", domain.ErrInvalidInput, doc.Version)
	}

	cats := make([]domain.Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		cats = append(cats, domain.Category{Name: c.Name, Subcategories: c.Subcategories})
	}
	return domain.NewTaxonomy(cats...), nil
}

// decodeMapping reads "name: [subs]" pairs in document order.
func decodeMapping(node *yaml.Node) (domain.Taxonomy, error) {
	cats := make([]domain.Category, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var subs []string
		if value.Tag != "!!null" {
			if err := value.Decode(&subs); err != nil {
				return domain.Taxonomy{}, fmt.Errorf("%w: subcategories of %q (line %d): %w",
					domain.ErrInvalidInput, key.Value, value.Line, err)
			}
		}
		cats = append(cats, domain.Category{Name: key.Value, Subcategories: subs})
	}
	return domain.NewTaxonomy(cats...), nil
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}
