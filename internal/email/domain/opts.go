package domain

import (
	"net/url"

	"nathanbeddoewebdev/opsdeck/internal/validation"
)

// CreateOpts holds the client-supplied fields of a new mailbox. Usage and
// last login are reported by the API and cannot be set.
type CreateOpts struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required"`
	Provider    string `json:"provider" validate:"required"`
	Status      Status `json:"status" validate:"required,enum"`
	Department  string `json:"department" validate:"required"`
	QuotaLimit  int64  `json:"quotaLimit" validate:"gt=0"`
	CreatedDate string `json:"createdDate" validate:"omitempty,datetime=2006-01-02"`
}

// Validate checks required fields and the address format.
func (o CreateOpts) Validate() error {
	return validation.Struct(o)
}

// UpdateOpts is a partial update.
type UpdateOpts struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	DisplayName *string `json:"displayName,omitempty"`
	Provider    *string `json:"provider,omitempty"`
	Status      *Status `json:"status,omitempty" validate:"omitempty,enum"`
	Department  *string `json:"department,omitempty"`
	QuotaLimit  *int64  `json:"quotaLimit,omitempty" validate:"omitempty,gt=0"`
	CreatedDate *string `json:"createdDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Validate rejects invalid values and blank replacements for required fields.
func (o UpdateOpts) Validate() error {
	if err := validation.Struct(o); err != nil {
		return err
	}
	return validation.NotBlank(
		validation.Field("email", o.Email),
		validation.Field("displayName", o.DisplayName),
		validation.Field("provider", o.Provider),
		validation.Field("status", o.Status),
		validation.Field("department", o.Department),
	)
}

// IsEmpty reports whether the update changes nothing.
func (o UpdateOpts) IsEmpty() bool {
	return o == UpdateOpts{}
}

// ListFilter narrows an account listing by exact match.
type ListFilter struct {
	Status     Status `json:"status" validate:"omitempty,enum"`
	Provider   string `json:"provider"`
	Department string `json:"department"`
}

// Query encodes the non-empty filter fields as query parameters.
func (f ListFilter) Query() (url.Values, error) {
	if err := validation.Struct(f); err != nil {
		return nil, err
	}
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Provider != "" {
		q.Set("provider", f.Provider)
	}
	if f.Department != "" {
		q.Set("department", f.Department)
	}
	return q, nil
}
