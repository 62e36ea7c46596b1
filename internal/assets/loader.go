package assets

// TemplateLoader loads card templates by name.
type TemplateLoader interface {
	// LoadTemplate loads a template by name (without .tex extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)

	// TemplateNames lists the templates this loader can serve, sorted.
	TemplateNames() []string
}
