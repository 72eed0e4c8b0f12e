package viewprefs

import (
	"context"

	"github.com/rs/zerolog"
)

// Service is a best-effort facade over a Repository. Failures are logged and
// never surface to the list screen; a missing store simply remembers nothing.
type Service struct {
	repo   Repository
	origin string
	logger zerolog.Logger
}

// NewService creates a preferences service scoped to one API origin.
// repo may be nil.
func NewService(repo Repository, origin string, logger zerolog.Logger) *Service {
	return &Service{repo: repo, origin: origin, logger: logger}
}

// Recall returns the saved search text and facet values for kind.
func (s *Service) Recall(ctx context.Context, kind string) (string, map[string]string) {
	if s == nil || s.repo == nil {
		return "", nil
	}
	prefs, err := s.repo.Get(ctx, s.origin, kind)
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("failed to load saved view")
		return "", nil
	}
	if prefs == nil {
		return "", nil
	}
	return prefs.Search, prefs.Facets
}

// Remember stores the search text and facet values for kind.
func (s *Service) Remember(ctx context.Context, kind, search string, facets map[string]string) {
	if s == nil || s.repo == nil {
		return
	}
	err := s.repo.Save(ctx, &ViewPrefs{Origin: s.origin, Kind: kind, Search: search, Facets: facets})
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("failed to save view")
	}
}

// Close releases repository resources.
func (s *Service) Close() error {
	if s == nil || s.repo == nil {
		return nil
	}
	return s.repo.Close()
}
