package viewprefs

import "time"

// ViewPrefs is the last search and facet selection used on one list screen.
type ViewPrefs struct {
	ID        int64
	Origin    string
	Kind      string
	Search    string
	Facets    map[string]string
	UpdatedAt time.Time
}
