package domain

import (
	"net/url"

	"nathanbeddoewebdev/opsdeck/internal/validation"
)

// CreateOpts holds the client-supplied fields of a new bucket.
type CreateOpts struct {
	Name          string `json:"name" validate:"required"`
	Provider      string `json:"provider" validate:"required"`
	Type          Type   `json:"type" validate:"required,enum"`
	Region        string `json:"region" validate:"required"`
	CapacityBytes int64  `json:"capacityBytes" validate:"gt=0"`
	IsPublic      bool   `json:"isPublic"`
}

// Validate checks required fields, the type and a positive capacity.
func (o CreateOpts) Validate() error {
	return validation.Struct(o)
}

// UpdateOpts is a partial update.
type UpdateOpts struct {
	Name          *string `json:"name,omitempty"`
	Provider      *string `json:"provider,omitempty"`
	Type          *Type   `json:"type,omitempty" validate:"omitempty,enum"`
	Region        *string `json:"region,omitempty"`
	CapacityBytes *int64  `json:"capacityBytes,omitempty" validate:"omitempty,gt=0"`
	IsPublic      *bool   `json:"isPublic,omitempty"`
}

// Validate rejects invalid values and blank replacements for required fields.
func (o UpdateOpts) Validate() error {
	if err := validation.Struct(o); err != nil {
		return err
	}
	return validation.NotBlank(
		validation.Field("name", o.Name),
		validation.Field("provider", o.Provider),
		validation.Field("type", o.Type),
		validation.Field("region", o.Region),
	)
}

// IsEmpty reports whether the update changes nothing.
func (o UpdateOpts) IsEmpty() bool {
	return o == UpdateOpts{}
}

// ListFilter narrows a bucket listing by exact match.
type ListFilter struct {
	Provider string `json:"provider"`
	Type     Type   `json:"type" validate:"omitempty,enum"`
	Region   string `json:"region"`
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
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Region != "" {
		q.Set("region", f.Region)
	}
	return q, nil
}
