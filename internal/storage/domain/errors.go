package domain

import shared "nathanbeddoewebdev/opsdeck/internal/domain"

var (
	ErrNotFound = shared.ErrNotFound
	ErrInvalid  = shared.ErrInvalid
	ErrLoad     = shared.ErrLoad
	ErrSave     = shared.ErrSave
	ErrDelete   = shared.ErrDelete
)
