package domain

import (
	"net/url"

	"nathanbeddoewebdev/opsdeck/internal/validation"
)

// CreateOpts holds the client-supplied fields of a new repository.
type CreateOpts struct {
	Name       string     `json:"name" validate:"required"`
	URL        string     `json:"url" validate:"required,url"`
	Provider   string     `json:"provider" validate:"required"`
	Language   string     `json:"language" validate:"required"`
	Visibility Visibility `json:"visibility" validate:"required,enum"`
	OwnerTeam  string     `json:"ownerTeam" validate:"required"`
	CIStatus   CIStatus   `json:"ciStatus" validate:"required,enum"`
}

// Validate checks required fields and enum values.
func (o CreateOpts) Validate() error {
	return validation.Struct(o)
}

// UpdateOpts is a partial update.
type UpdateOpts struct {
	Name       *string     `json:"name,omitempty"`
	URL        *string     `json:"url,omitempty" validate:"omitempty,url"`
	Provider   *string     `json:"provider,omitempty"`
	Language   *string     `json:"language,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty" validate:"omitempty,enum"`
	OwnerTeam  *string     `json:"ownerTeam,omitempty"`
	CIStatus   *CIStatus   `json:"ciStatus,omitempty" validate:"omitempty,enum"`
}

// Validate rejects invalid enums and blank replacements for required fields.
func (o UpdateOpts) Validate() error {
	if err := validation.Struct(o); err != nil {
		return err
	}
	return validation.NotBlank(
		validation.Field("name", o.Name),
		validation.Field("url", o.URL),
		validation.Field("provider", o.Provider),
		validation.Field("language", o.Language),
		validation.Field("visibility", o.Visibility),
		validation.Field("ownerTeam", o.OwnerTeam),
		validation.Field("ciStatus", o.CIStatus),
	)
}

// IsEmpty reports whether the update changes nothing.
func (o UpdateOpts) IsEmpty() bool {
	return o == UpdateOpts{}
}

// ListFilter narrows a repository listing by exact match.
type ListFilter struct {
	Provider   string     `json:"provider"`
	Language   string     `json:"language"`
	Visibility Visibility `json:"visibility" validate:"omitempty,enum"`
}

// Query encodes the non-empty filter fields as query parameters.
func (f ListFilter) Query() (url.Values, error) {
	if err := validation.Struct(f); err != nil {
		return nil, err
	}
	q := url.Values{}
	if f.Provider != "" {
		q.Set("provider", f.Provider)
	}
	if f.Language != "" {
		q.Set("language", f.Language)
	}
	if f.Visibility != "" {
		q.Set("visibility", string(f.Visibility))
	}
	return q, nil
}
