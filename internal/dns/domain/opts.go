package domain

import (
	"net/url"

	"nathanbeddoewebdev/opsdeck/internal/validation"
)

// CreateOpts holds the client-supplied fields of a new domain. SSL info and
// DNS records are never part of creation.
type CreateOpts struct {
	Name             string   `json:"name" validate:"required,fqdn"`
	Registrar        string   `json:"registrar" validate:"required"`
	RegistrationDate string   `json:"registrationDate" validate:"required,datetime=2006-01-02"`
	ExpiryDate       string   `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	AutoRenew        bool     `json:"autoRenew"`
	Owner            string   `json:"owner" validate:"required"`
	Status           Status   `json:"status" validate:"required,enum"`
	Cost             *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

// Validate checks required fields, date formats and enum membership.
func (o CreateOpts) Validate() error {
	return validation.Struct(o)
}

// UpdateOpts is a partial update. Nil fields, SSL info and DNS records are
// left untouched by the API.
type UpdateOpts struct {
	Name             *string  `json:"name,omitempty" validate:"omitempty,fqdn"`
	Registrar        *string  `json:"registrar,omitempty"`
	RegistrationDate *string  `json:"registrationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate       *string  `json:"expiryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AutoRenew        *bool    `json:"autoRenew,omitempty"`
	Owner            *string  `json:"owner,omitempty"`
	Status           *Status  `json:"status,omitempty" validate:"omitempty,enum"`
	Cost             *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

// Validate rejects unknown enum values and blanked required fields.
func (o UpdateOpts) Validate() error {
	if err := validation.Struct(o); err != nil {
		return err
	}
	return validation.NotBlank(
		validation.Field("name", o.Name),
		validation.Field("registrar", o.Registrar),
		validation.Field("registrationDate", o.RegistrationDate),
		validation.Field("expiryDate", o.ExpiryDate),
		validation.Field("owner", o.Owner),
		validation.Field("status", o.Status),
	)
}

// IsEmpty reports whether the update changes nothing.
func (o UpdateOpts) IsEmpty() bool {
	return o == UpdateOpts{}
}

// RecordOpts holds the parameters for adding a DNS record.
type RecordOpts struct {
	Type  RecordType `json:"type" validate:"required,enum"`
	Name  string     `json:"name" validate:"required"`
	Value string     `json:"value" validate:"required"`
	TTL   int        `json:"ttl" validate:"gt=0"`
}

// Validate checks required fields, the record type, a positive TTL and
// address-family agreement for A and AAAA records.
func (o RecordOpts) Validate() error {
	if err := validation.Struct(o); err != nil {
		return err
	}
	return CheckContent(o.Type, o.Value)
}

// RecordUpdateOpts is a partial update of one DNS record.
type RecordUpdateOpts struct {
	Type  *RecordType `json:"type,omitempty" validate:"omitempty,enum"`
	Name  *string     `json:"name,omitempty"`
	Value *string     `json:"value,omitempty"`
	TTL   *int        `json:"ttl,omitempty" validate:"omitempty,gt=0"`
}

// Validate rejects unknown record types, non-positive TTLs and blanked
// fields.
func (o RecordUpdateOpts) Validate() error {
	if err := validation.Struct(o); err != nil {
		return err
	}
	return validation.NotBlank(
		validation.Field("type", o.Type),
		validation.Field("name", o.Name),
		validation.Field("value", o.Value),
	)
}

// ListFilter narrows a domain listing by exact match. Empty fields are
// unconstrained.
type ListFilter struct {
	Status    Status `json:"status" validate:"omitempty,enum"`
	Registrar string `json:"registrar"`
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
	if f.Registrar != "" {
		q.Set("registrar", f.Registrar)
	}
	return q, nil
}
