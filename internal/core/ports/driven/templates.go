package driven

// Template names.
const (
	TemplateCombatBlock = "combat_block"
)

// TemplateStore provides user-editable rule templates.
type TemplateStore interface {
	// Load returns the template for the given name.
	// Falls back to the built-in template when no user file exists.
	Load(name string) (string, error)
}
