package domain

import shared "nathanbeddoewebdev/opsdeck/internal/domain"

// Re-export the shared error kinds so server callers can classify failures
// without importing the cross-entity package.
var (
	ErrNotFound = shared.ErrNotFound
	ErrInvalid  = shared.ErrInvalid
	ErrLoad     = shared.ErrLoad
	ErrSave     = shared.ErrSave
	ErrDelete   = shared.ErrDelete
)
