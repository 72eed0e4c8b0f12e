// Package domain defines mailbox accounts managed through the inventory.
package domain

import (
	"slices"

	shared "nathanbeddoewebdev/opsdeck/internal/domain"
)

// Kind names this entity in audit entries, saved views and messages.
const Kind = "email"

// Status is the lifecycle state of a mailbox.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

var statuses = []Status{StatusActive, StatusSuspended, StatusPending}

// Statuses returns every valid Status in display order.
func Statuses() []Status { return slices.Clone(statuses) }

func (s Status) Valid() bool { return shared.IsMember(s, statuses) }

func (s *Status) UnmarshalText(text []byte) error {
	return shared.UnmarshalEnum("email status", text, statuses, s)
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(s string) (Status, error) { return shared.ParseEnum("email status", s, statuses) }

// Providers lists the mail hosts offered when creating an account. The API
// accepts any provider name.
var Providers = []string{"Google Workspace", "Microsoft 365", "Zoho Mail", "ProtonMail"}

// DefaultQuotaLimit is the mailbox size, in MB, offered for new accounts.
const DefaultQuotaLimit = 15360

// Account is one mailbox. Quotas are in megabytes.
type Account struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Provider    string `json:"provider"`
	Status      Status `json:"status"`
	Department  string `json:"department"`
	// QuotaUsed is computed by the API.
	QuotaUsed   int64  `json:"quotaUsed"`
	QuotaLimit  int64  `json:"quotaLimit"`
	CreatedDate string `json:"createdDate"`
	LastLogin   string `json:"lastLogin,omitempty"`
}

var _ shared.Entity = Account{}

func (a Account) Key() string   { return a.ID }
func (a Account) Label() string { return a.Email }
