package updates

// Component is an installed component as reported by the host's registry.
type Component struct {
	// ID is the host's identifier for the component; facts are keyed by it
	ID string `yaml:"id"`

	// Name is a display name (optional)
	Name string `yaml:"name"`

	// Version is the installed version as declared by the component
	Version string `yaml:"version"`

	// URL is the component's declared homepage, usually its source repository
	URL string `yaml:"url"`
}

// UpdateFact states that a newer release exists for one component.
// Only produced when Latest is strictly newer than Current.
type UpdateFact struct {
	// Current is the installed version as declared
	Current string `json:"current"`

	// Latest is the newest released version, without a leading "v"
	Latest string `json:"latest"`

	// URL links to the release page. Not trusted: consumers must check the scheme.
	URL string `json:"url"`
}

// Facts maps component IDs to update facts. It is built per request and never persisted.
type Facts map[string]UpdateFact
