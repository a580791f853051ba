// Package policy implements the Strategy pattern for monitored targets.
// Each app (Chrome, Instagram, ...) has its own policy naming the platform
// identifier that scroll events carry and the desktop processes that back it.
package policy

// TargetPolicy defines a single monitored target.
type TargetPolicy interface {
	// ID returns the platform identifier (e.g., "com.instagram.android").
	ID() string

	// Name returns human-readable name for display.
	Name() string

	// ProcessPatterns returns process names to terminate on a desktop host
	// when the user is forced out of the target.
	// Patterns are matched case-insensitively.
	ProcessPatterns() []string
}

// AppTarget is a fixed TargetPolicy.
type AppTarget struct {
	id       string
	name     string
	patterns []string
}

// NewAppTarget creates a target policy.
func NewAppTarget(id, name string, patterns ...string) *AppTarget {
	return &AppTarget{id: id, name: name, patterns: patterns}
}

func (t *AppTarget) ID() string {
	return t.id
}

func (t *AppTarget) Name() string {
	return t.name
}

func (t *AppTarget) ProcessPatterns() []string {
	return t.patterns
}

// Ensure AppTarget implements TargetPolicy.
var _ TargetPolicy = (*AppTarget)(nil)
