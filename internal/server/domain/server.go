// Package domain defines the Server inventory record, its closed status and
// category enumerations, and the inputs accepted by the server service.
package domain

import (
	"slices"
	"strings"

	shared "nathanbeddoewebdev/opsdeck/internal/domain"
)

// Kind names this entity in audit entries, saved views and messages.
const Kind = "server"

// Status is the operational state of a server.
type Status string

const (
	StatusOnline      Status = "online"
	StatusOffline     Status = "offline"
	StatusMaintenance Status = "maintenance"
	StatusWarning     Status = "warning"
)

var statuses = []Status{StatusOnline, StatusOffline, StatusMaintenance, StatusWarning}

// Statuses returns every valid Status in display order.
func Statuses() []Status { return slices.Clone(statuses) }

func (s Status) Valid() bool { return shared.IsMember(s, statuses) }

func (s *Status) UnmarshalText(text []byte) error {
	return shared.UnmarshalEnum("server status", text, statuses, s)
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(s string) (Status, error) { return shared.ParseEnum("server status", s, statuses) }

// Category is the environment a server belongs to.
type Category string

const (
	CategoryProduction  Category = "production"
	CategoryStaging     Category = "staging"
	CategoryDevelopment Category = "development"
	CategoryTesting     Category = "testing"
)

var categories = []Category{CategoryProduction, CategoryStaging, CategoryDevelopment, CategoryTesting}

// Categories returns every valid Category in display order.
func Categories() []Category { return slices.Clone(categories) }

func (c Category) Valid() bool { return shared.IsMember(c, categories) }

func (c *Category) UnmarshalText(text []byte) error {
	return shared.UnmarshalEnum("server category", text, categories, c)
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	return shared.ParseEnum("server category", s, categories)
}

// Specs is the free-form hardware description of a server.
type Specs struct {
	CPU     string `json:"cpu"`
	RAM     string `json:"ram"`
	Storage string `json:"storage"`
}

// Server is one machine in the inventory.
type Server struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	IPAddress       string   `json:"ipAddress"`
	OS              string   `json:"os"`
	Specs           Specs    `json:"specs"`
	Location        string   `json:"location"`
	Provider        string   `json:"provider"`
	Status          Status   `json:"status"`
	Category        Category `json:"category"`
	ResponsibleTeam string   `json:"responsibleTeam"`
	LastPatchDate   string   `json:"lastPatchDate"`
	Tags            []string `json:"tags,omitempty"`
}

var _ shared.Entity = Server{}

func (s Server) Key() string   { return s.ID }
func (s Server) Label() string { return s.Name }

// NormalizeTags trims tags, drops empty ones and removes duplicates while
// keeping first-seen order. Tags form an unordered set.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
