// Package icons provides the built-in Font Awesome icon catalog.
package icons

import (
	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.IconCatalog = (*Catalog)(nil)

// builtin lists icons in display order.
var builtin = []domain.Icon{
	{Name: "attack", Class: "fa-solid fa-hand-fist"},
	{Name: "defense", Class: "fa-solid fa-shield-halved"},
	{Name: "movement", Class: "fa-solid fa-person-running"},
	{Name: "ranged", Class: "fa-solid fa-crosshairs"},
	{Name: "morale", Class: "fa-solid fa-flag"},
	{Name: "magic", Class: "fa-solid fa-wand-sparkles"},
	{Name: "terrain", Class: "fa-solid fa-mountain"},
	{Name: "dice", Class: "fa-solid fa-dice-d20"},
	{Name: "objective", Class: "fa-solid fa-bullseye"},
	{Name: "special", Class: "fa-solid fa-star"},
}

// Catalog is a static icon catalog.
type Catalog struct {
	icons  []domain.Icon
	byName map[string]domain.Icon
}

// NewCatalog returns the built-in catalog plus extra icons. An extra icon
// with a built-in name replaces it in place.
func NewCatalog(extra ...domain.Icon) *Catalog {
	c := &Catalog{byName: make(map[string]domain.Icon)}
	for _, icon := range append(append([]domain.Icon(nil), builtin...), extra...) {
		if icon.Name == "" || icon.Class == "" {
			continue
		}
		if _, exists := c.byName[icon.Name]; exists {
			for i := range c.icons {
				if c.icons[i].Name == icon.Name {
					c.icons[i] = icon
				}
			}
		} else {
			c.icons = append(c.icons, icon)
		}
		c.byName[icon.Name] = icon
	}
	return c
}

// List returns every icon in display order.
func (c *Catalog) List() []domain.Icon {
	out := make([]domain.Icon, len(c.icons))
	copy(out, c.icons)
	return out
}

// Get returns an icon by name.
func (c *Catalog) Get(name string) (domain.Icon, bool) {
	icon, ok := c.byName[name]
	return icon, ok
}
