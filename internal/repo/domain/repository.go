// Package domain defines source code repositories tracked by the inventory.
package domain

import (
	"slices"

	shared "nathanbeddoewebdev/opsdeck/internal/domain"
)

// Kind names this entity in audit entries, saved views and messages.
const Kind = "repository"

// Visibility controls who can see a repository.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
)

var visibilities = []Visibility{VisibilityPublic, VisibilityPrivate, VisibilityInternal}

// Visibilities returns every visibility in display order.
func Visibilities() []Visibility { return slices.Clone(visibilities) }

func (v Visibility) Valid() bool { return shared.IsMember(v, visibilities) }

func (v *Visibility) UnmarshalText(text []byte) error {
	return shared.UnmarshalEnum("visibility", text, visibilities, v)
}

// ParseVisibility parses s case-insensitively.
func ParseVisibility(s string) (Visibility, error) {
	return shared.ParseEnum("visibility", s, visibilities)
}

// CIStatus is the result of the latest pipeline run on the default branch.
type CIStatus string

const (
	CIPassing CIStatus = "passing"
	CIFailing CIStatus = "failing"
	CIPending CIStatus = "pending"
	CINone    CIStatus = "none"
)

var ciStatuses = []CIStatus{CIPassing, CIFailing, CIPending, CINone}

// CIStatuses returns every CI status in display order.
func CIStatuses() []CIStatus { return slices.Clone(ciStatuses) }

func (c CIStatus) Valid() bool { return shared.IsMember(c, ciStatuses) }

func (c *CIStatus) UnmarshalText(text []byte) error {
	return shared.UnmarshalEnum("ci status", text, ciStatuses, c)
}

// ParseCIStatus parses s case-insensitively.
func ParseCIStatus(s string) (CIStatus, error) {
	return shared.ParseEnum("ci status", s, ciStatuses)
}

// Hosting providers and languages offered by the create form.
var (
	Providers = []string{"GitHub", "GitLab", "Bitbucket", "Azure DevOps"}
	Languages = []string{"TypeScript", "JavaScript", "Python", "Java", "Go", "Rust", "Kotlin", "YAML", "Markdown"}
)

// Repository is one hosted code repository. Branches, OpenIssues and
// LastCommit are maintained by the API.
type Repository struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Provider   string     `json:"provider"`
	Language   string     `json:"language"`
	Visibility Visibility `json:"visibility"`
	OwnerTeam  string     `json:"ownerTeam"`
	CIStatus   CIStatus   `json:"ciStatus"`
	LastCommit string     `json:"lastCommit,omitempty"`
	Branches   int        `json:"branches"`
	OpenIssues int        `json:"openIssues"`
}

var _ shared.Entity = Repository{}

func (r Repository) Key() string   { return r.ID }
func (r Repository) Label() string { return r.Name }
