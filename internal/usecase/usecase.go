// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Page is the common pagination input for list operations.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}
