package domain

import shared "nathanbeddoewebdev/opsdeck/internal/domain"

// Re-export the shared error kinds so DNS callers do not need to import
// the cross-entity package directly.
var (
	ErrNotFound = shared.ErrNotFound
	ErrInvalid  = shared.ErrInvalid
	ErrLoad     = shared.ErrLoad
	ErrSave     = shared.ErrSave
	ErrDelete   = shared.ErrDelete
)
