package domain

// Entity is implemented by every inventory record kind.
type Entity interface {
	// Key returns the server-assigned identifier.
	Key() string
	// Label returns a short human-readable name for confirmations and logs.
	Label() string
}
