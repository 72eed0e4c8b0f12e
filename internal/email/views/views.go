// Package views adapts email accounts to the list, form and detail
// view-models.
package views

import (
	"fmt"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/area"
	"nathanbeddoewebdev/opsdeck/internal/detail"
	"nathanbeddoewebdev/opsdeck/internal/display"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/email/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/resource"
)

// Def is the email area definition.
type Def = area.Def[domain.Account, domain.CreateOpts, domain.UpdateOpts, Draft]

// Draft is the editable copy of an account. Quota usage and last login are
// reported by the provider and never edited.
type Draft struct {
	Email       string
	DisplayName string
	Provider    string
	Status      domain.Status
	Department  string
	QuotaLimit  int64
	CreatedDate string
}

// NewDraft returns the create-mode defaults, dated today.
func NewDraft(now time.Time) Draft {
	return Draft{
		Provider:    domain.Providers[0],
		Status:      domain.StatusActive,
		QuotaLimit:  domain.DefaultQuotaLimit,
		CreatedDate: now.Format(form.DateLayout),
	}
}

// FromAccount seeds an edit-mode draft.
func FromAccount(a domain.Account) Draft {
	return Draft{
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Provider:    a.Provider,
		Status:      a.Status,
		Department:  a.Department,
		QuotaLimit:  a.QuotaLimit,
		CreatedDate: a.CreatedDate,
	}
}

// ToCreate converts a completed draft into create options.
func (d Draft) ToCreate() domain.CreateOpts {
	return domain.CreateOpts{
		Email:       d.Email,
		DisplayName: d.DisplayName,
		Provider:    d.Provider,
		Status:      d.Status,
		Department:  d.Department,
		QuotaLimit:  d.QuotaLimit,
		CreatedDate: d.CreatedDate,
	}
}

// ToUpdate sends only the fields that differ from seed.
func (d Draft) ToUpdate(seed Draft) domain.UpdateOpts {
	return domain.UpdateOpts{
		Email:       area.Changed(seed.Email, d.Email),
		DisplayName: area.Changed(seed.DisplayName, d.DisplayName),
		Provider:    area.Changed(seed.Provider, d.Provider),
		Status:      area.Changed(seed.Status, d.Status),
		Department:  area.Changed(seed.Department, d.Department),
		QuotaLimit:  area.Changed(seed.QuotaLimit, d.QuotaLimit),
		CreatedDate: area.Changed(seed.CreatedDate, d.CreatedDate),
	}
}

// Fields is the create and edit form, in display order.
func Fields() []form.Field[Draft] {
	return []form.Field[Draft]{
		form.Text("email", "Email", func(d *Draft) *string { return &d.Email }).Require().WithHint("name@example.com"),
		form.Text("displayName", "Display name", func(d *Draft) *string { return &d.DisplayName }).Require(),
		form.Choice("provider", "Provider", domain.Providers, func(d *Draft) *string { return &d.Provider }).Require(),
		form.Enum("status", "Status", domain.Statuses(), func(d *Draft) *domain.Status { return &d.Status }).Require(),
		form.Text("department", "Department", func(d *Draft) *string { return &d.Department }).Require(),
		form.Int("quotaLimit", "Quota limit (MB)", func(d *Draft) *int64 { return &d.QuotaLimit }).Require(),
		form.Date("createdDate", "Created", func(d *Draft) *string { return &d.CreatedDate }),
	}
}

// Quota renders usage as "3.2 GB / 15.0 GB (21%)".
func Quota(a domain.Account) string {
	pct := display.UsagePercent(float64(a.QuotaUsed), float64(a.QuotaLimit))
	return fmt.Sprintf("%s / %s (%d%%)", display.FormatMB(float64(a.QuotaUsed)), display.FormatMB(float64(a.QuotaLimit)), pct)
}

// NewList returns the account list view-model. Search covers the address
// and display name; provider options come from the loaded accounts.
func NewList() *listing.List[domain.Account] {
	return listing.New(listing.Config[domain.Account]{
		Search: func(a domain.Account) []string { return []string{a.Email, a.DisplayName} },
		Facets: []listing.Facet[domain.Account]{
			{
				Name:    "status",
				Label:   "Status",
				Value:   func(a domain.Account) string { return string(a.Status) },
				Options: shared.EnumStrings(domain.Statuses()),
			},
			{
				Name:  "provider",
				Label: "Provider",
				Value: func(a domain.Account) string { return a.Provider },
			},
		},
		Columns: []listing.Column[domain.Account]{
			{Header: "ID", Value: func(a domain.Account) string { return a.ID }},
			{Header: "EMAIL", Value: func(a domain.Account) string { return a.Email }},
			{Header: "NAME", Value: func(a domain.Account) string { return a.DisplayName }},
			{Header: "PROVIDER", Value: func(a domain.Account) string { return a.Provider }},
			{Header: "STATUS", Value: func(a domain.Account) string { return string(a.Status) }},
			{Header: "DEPARTMENT", Value: func(a domain.Account) string { return a.Department }},
			{Header: "QUOTA", Value: Quota},
		},
	})
}

// Detail lists the rows of the detail pane.
func Detail(a domain.Account) []detail.Row {
	return []detail.Row{
		{Label: "ID", Value: a.ID},
		{Label: "Email", Value: a.Email},
		{Label: "Display name", Value: a.DisplayName},
		{Label: "Provider", Value: a.Provider},
		{Label: "Status", Value: string(a.Status)},
		{Label: "Department", Value: a.Department},
		{Label: "Quota", Value: Quota(a)},
		{Label: "Created", Value: a.CreatedDate},
		{Label: "Last login", Value: display.Relative(a.LastLogin)},
	}
}

// Filter builds a list filter from saved-view values.
func Filter(values map[string]string) (resource.Filter, error) {
	var f domain.ListFilter
	if v := values["status"]; v != "" {
		st, err := domain.ParseStatus(v)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	f.Provider = values["provider"]
	f.Department = values["department"]
	return f, nil
}

// Area returns the email area definition. now dates new accounts.
func Area(now func() time.Time) Def {
	return Def{
		Kind:       domain.Kind,
		Nouns:      resource.Nouns{Singular: "email account", Plural: "email accounts"},
		NewList:    NewList,
		Fields:     Fields(),
		Defaults:   func() Draft { return NewDraft(now()) },
		FromEntity: FromAccount,
		ToCreate:   Draft.ToCreate,
		ToUpdate:   func(seed, d Draft) domain.UpdateOpts { return d.ToUpdate(seed) },
		Detail:     Detail,
		Filters: []area.FilterFlag{
			{Name: "status", Usage: "Only accounts with this status (" + shared.JoinEnum(domain.Statuses()) + ")"},
			{Name: "provider", Usage: "Only accounts at this provider"},
			{Name: "department", Usage: "Only accounts in this department"},
		},
		Filter: Filter,
	}
}
