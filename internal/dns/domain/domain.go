// Package domain defines the Domain inventory record together with its
// embedded SSL certificate summary and DNS records.
package domain

import (
	"slices"

	shared "nathanbeddoewebdev/opsdeck/internal/domain"
)

// Kind names this entity in audit entries, saved views and messages.
const Kind = "domain"

// Status is the registration state of a domain.
type Status string

const (
	StatusActive          Status = "active"
	StatusExpired         Status = "expired"
	StatusPendingTransfer Status = "pending_transfer"
	StatusGracePeriod     Status = "grace_period"
)

var statuses = []Status{StatusActive, StatusExpired, StatusPendingTransfer, StatusGracePeriod}

// Statuses returns every valid Status in display order.
func Statuses() []Status { return slices.Clone(statuses) }

func (s Status) Valid() bool { return shared.IsMember(s, statuses) }

func (s *Status) UnmarshalText(text []byte) error {
	return shared.UnmarshalEnum("domain status", text, statuses, s)
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(s string) (Status, error) { return shared.ParseEnum("domain status", s, statuses) }

// SSLStatus is the state of a domain's certificate.
type SSLStatus string

const (
	SSLValid        SSLStatus = "valid"
	SSLExpired      SSLStatus = "expired"
	SSLExpiringSoon SSLStatus = "expiring_soon"
	SSLInvalid      SSLStatus = "invalid"
)

var sslStatuses = []SSLStatus{SSLValid, SSLExpired, SSLExpiringSoon, SSLInvalid}

func (s SSLStatus) Valid() bool { return shared.IsMember(s, sslStatuses) }

func (s *SSLStatus) UnmarshalText(text []byte) error {
	return shared.UnmarshalEnum("ssl status", text, sslStatuses, s)
}

// SSLInfo summarises the certificate served for a domain. It is maintained
// by the API and is not independently addressable.
type SSLInfo struct {
	Issuer    string    `json:"issuer"`
	ValidFrom string    `json:"validFrom"`
	ValidTo   string    `json:"validTo"`
	Status    SSLStatus `json:"status"`
}

// Domain is one registered domain name.
type Domain struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Registrar        string   `json:"registrar"`
	RegistrationDate string   `json:"registrationDate"`
	ExpiryDate       string   `json:"expiryDate"`
	AutoRenew        bool     `json:"autoRenew"`
	Owner            string   `json:"owner"`
	Status           Status   `json:"status"`
	SSL              *SSLInfo `json:"ssl,omitempty"`
	DNSRecords       []Record `json:"dnsRecords,omitempty"`
	Cost             *float64 `json:"cost,omitempty"`
}

var _ shared.Entity = Domain{}

func (d Domain) Key() string   { return d.ID }
func (d Domain) Label() string { return d.Name }

// Record returns the DNS record with the given ID, or nil.
func (d Domain) Record(id string) *Record {
	for i := range d.DNSRecords {
		if d.DNSRecords[i].ID == id {
			return &d.DNSRecords[i]
		}
	}
	return nil
}
