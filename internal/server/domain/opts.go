package domain

import (
	"net/url"

	"nathanbeddoewebdev/opsdeck/internal/validation"
)

// CreateOpts holds every client-supplied field of a new server. The ID is
// assigned by the API.
type CreateOpts struct {
	Name            string   `json:"name" validate:"required"`
	IPAddress       string   `json:"ipAddress" validate:"required,ip"`
	OS              string   `json:"os" validate:"required"`
	Specs           Specs    `json:"specs"`
	Location        string   `json:"location" validate:"required"`
	Provider        string   `json:"provider" validate:"required"`
	Status          Status   `json:"status" validate:"required,enum"`
	Category        Category `json:"category" validate:"required,enum"`
	ResponsibleTeam string   `json:"responsibleTeam" validate:"required"`
	LastPatchDate   string   `json:"lastPatchDate" validate:"omitempty,datetime=2006-01-02"`
	Tags            []string `json:"tags"`
}

// Validate checks required fields and enum membership.
func (o CreateOpts) Validate() error {
	return validation.Struct(o)
}

// UpdateOpts is a partial update. Nil fields are left unchanged by the API.
type UpdateOpts struct {
	Name            *string   `json:"name,omitempty"`
	IPAddress       *string   `json:"ipAddress,omitempty" validate:"omitempty,ip"`
	OS              *string   `json:"os,omitempty"`
	Specs           *Specs    `json:"specs,omitempty"`
	Location        *string   `json:"location,omitempty"`
	Provider        *string   `json:"provider,omitempty"`
	Status          *Status   `json:"status,omitempty" validate:"omitempty,enum"`
	Category        *Category `json:"category,omitempty" validate:"omitempty,enum"`
	ResponsibleTeam *string   `json:"responsibleTeam,omitempty"`
	LastPatchDate   *string   `json:"lastPatchDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Tags            *[]string `json:"tags,omitempty"`
}

// Validate rejects unknown enum values and blanked required fields.
func (o UpdateOpts) Validate() error {
	if err := validation.Struct(o); err != nil {
		return err
	}
	return validation.NotBlank(
		validation.Field("name", o.Name),
		validation.Field("ipAddress", o.IPAddress),
		validation.Field("os", o.OS),
		validation.Field("location", o.Location),
		validation.Field("provider", o.Provider),
		validation.Field("status", o.Status),
		validation.Field("category", o.Category),
		validation.Field("responsibleTeam", o.ResponsibleTeam),
	)
}

// IsEmpty reports whether the update changes nothing.
func (o UpdateOpts) IsEmpty() bool {
	return o == UpdateOpts{}
}

// ListFilter narrows a server listing by exact match. Empty fields are
// unconstrained.
type ListFilter struct {
	Status   Status   `json:"status" validate:"omitempty,enum"`
	Category Category `json:"category" validate:"omitempty,enum"`
}

// Query validates the filter and encodes it as query-string parameters.
func (f ListFilter) Query() (url.Values, error) {
	if err := validation.Struct(f); err != nil {
		return nil, err
	}
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	return q, nil
}
