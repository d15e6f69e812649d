package domain

import "strings"

// Template placeholders understood by the rule inserter.
const (
	PlaceholderCategory    = "{category}"
	PlaceholderSubcategory = "{subcategory}"
	PlaceholderIcon        = "{icon}"
)

// DefaultCombatTemplate is the built-in Combat Resolution block.
const DefaultCombatTemplate = `### {category}: {subcategory}

#### Combat Resolution {icon}
- **Action Type**: 
- **Required Dice Roll**: 
- **Modifiers**: 
- **Success Criteria**: 
- **Special Abilities**: 
`

// FillTemplate substitutes the placeholders in tmpl. Unknown text is left
// untouched.
func FillTemplate(tmpl, category, subcategory, icon string) string {
	out := strings.NewReplacer(
		PlaceholderCategory, category,
		PlaceholderSubcategory, subcategory,
		PlaceholderIcon, icon,
	).Replace(tmpl)
	if icon == "" {
		out = strings.ReplaceAll(out, "Resolution \n", "Resolution\n")
	}
	return out
}
