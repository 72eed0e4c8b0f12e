// Package views adapts repositories to the list, form and detail
// view-models.
package views

import (
	"strconv"

	"nathanbeddoewebdev/opsdeck/internal/area"
	"nathanbeddoewebdev/opsdeck/internal/detail"
	"nathanbeddoewebdev/opsdeck/internal/display"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/repo/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"
)

// Def is the repository area definition.
type Def = area.Def[domain.Repository, domain.CreateOpts, domain.UpdateOpts, Draft]

// Draft is the editable copy of a repository. Branch and issue counts and
// the last commit time come from the hosting provider.
type Draft struct {
	Name       string
	URL        string
	Provider   string
	Language   string
	Visibility domain.Visibility
	OwnerTeam  string
	CIStatus   domain.CIStatus
}

// NewDraft returns the create-form defaults.
func NewDraft() Draft {
	return Draft{
		Provider:   "GitHub",
		Language:   "TypeScript",
		Visibility: domain.VisibilityPrivate,
		CIStatus:   domain.CINone,
	}
}

// FromRepository seeds an edit-mode draft.
func FromRepository(r domain.Repository) Draft {
	return Draft{
		Name:       r.Name,
		URL:        r.URL,
		Provider:   r.Provider,
		Language:   r.Language,
		Visibility: r.Visibility,
		OwnerTeam:  r.OwnerTeam,
		CIStatus:   r.CIStatus,
	}
}

// ToCreate converts a completed draft into create options.
func (d Draft) ToCreate() domain.CreateOpts {
	return domain.CreateOpts{
		Name:       d.Name,
		URL:        d.URL,
		Provider:   d.Provider,
		Language:   d.Language,
		Visibility: d.Visibility,
		OwnerTeam:  d.OwnerTeam,
		CIStatus:   d.CIStatus,
	}
}

// ToUpdate sends only the fields that differ from seed.
func (d Draft) ToUpdate(seed Draft) domain.UpdateOpts {
	return domain.UpdateOpts{
		Name:       area.Changed(seed.Name, d.Name),
		URL:        area.Changed(seed.URL, d.URL),
		Provider:   area.Changed(seed.Provider, d.Provider),
		Language:   area.Changed(seed.Language, d.Language),
		Visibility: area.Changed(seed.Visibility, d.Visibility),
		OwnerTeam:  area.Changed(seed.OwnerTeam, d.OwnerTeam),
		CIStatus:   area.Changed(seed.CIStatus, d.CIStatus),
	}
}

// Fields is the create and edit form, in display order.
func Fields() []form.Field[Draft] {
	return []form.Field[Draft]{
		form.Text("name", "Name", func(d *Draft) *string { return &d.Name }).Require(),
		form.Text("url", "URL", func(d *Draft) *string { return &d.URL }).Require().WithHint("https://github.com/org/repo"),
		form.Choice("provider", "Provider", domain.Providers, func(d *Draft) *string { return &d.Provider }).Require(),
		form.Choice("language", "Language", domain.Languages, func(d *Draft) *string { return &d.Language }).Require(),
		form.Enum("visibility", "Visibility", domain.Visibilities(), func(d *Draft) *domain.Visibility { return &d.Visibility }).Require(),
		form.Text("ownerTeam", "Owner team", func(d *Draft) *string { return &d.OwnerTeam }).Require(),
		form.Enum("ciStatus", "CI status", domain.CIStatuses(), func(d *Draft) *domain.CIStatus { return &d.CIStatus }).Require(),
	}
}

// NewList returns the repository list view-model. Search covers name, URL
// and owning team; provider options come from the loaded repositories.
func NewList() *listing.List[domain.Repository] {
	return listing.New(listing.Config[domain.Repository]{
		Search: func(r domain.Repository) []string { return []string{r.Name, r.URL, r.OwnerTeam} },
		Facets: []listing.Facet[domain.Repository]{
			{
				Name:  "provider",
				Label: "Provider",
				Value: func(r domain.Repository) string { return r.Provider },
			},
			{
				Name:    "visibility",
				Label:   "Visibility",
				Value:   func(r domain.Repository) string { return string(r.Visibility) },
				Options: shared.EnumStrings(domain.Visibilities()),
			},
		},
		Columns: []listing.Column[domain.Repository]{
			{Header: "ID", Value: func(r domain.Repository) string { return r.ID }},
			{Header: "NAME", Value: func(r domain.Repository) string { return r.Name }},
			{Header: "PROVIDER", Value: func(r domain.Repository) string { return r.Provider }},
			{Header: "LANGUAGE", Value: func(r domain.Repository) string { return r.Language }},
			{Header: "VISIBILITY", Value: func(r domain.Repository) string { return string(r.Visibility) }},
			{Header: "CI", Value: func(r domain.Repository) string { return string(r.CIStatus) }},
			{Header: "TEAM", Value: func(r domain.Repository) string { return r.OwnerTeam }},
			{Header: "LAST COMMIT", Value: func(r domain.Repository) string { return display.Relative(r.LastCommit) }},
		},
	})
}

// Detail lists the rows of the detail pane.
func Detail(r domain.Repository) []detail.Row {
	return []detail.Row{
		{Label: "ID", Value: r.ID},
		{Label: "Name", Value: r.Name},
		{Label: "URL", Value: r.URL},
		{Label: "Provider", Value: r.Provider},
		{Label: "Language", Value: r.Language},
		{Label: "Visibility", Value: string(r.Visibility)},
		{Label: "Owner team", Value: r.OwnerTeam},
		{Label: "CI status", Value: string(r.CIStatus)},
		{Label: "Branches", Value: strconv.Itoa(r.Branches)},
		{Label: "Open issues", Value: strconv.Itoa(r.OpenIssues)},
		{Label: "Last commit", Value: display.Relative(r.LastCommit)},
	}
}

// Filter builds a list filter from saved-view values, rejecting unknown enum values.
func Filter(values map[string]string) (resource.Filter, error) {
	f := domain.ListFilter{Provider: values["provider"], Language: values["language"]}
	if v := values["visibility"]; v != "" {
		vis, err := domain.ParseVisibility(v)
		if err != nil {
			return nil, err
		}
		f.Visibility = vis
	}
	return f, nil
}

// Area returns the repository area definition.
func Area() Def {
	return Def{
		Kind:       domain.Kind,
		Nouns:      resource.Nouns{Singular: "repository", Plural: "repositories"},
		NewList:    NewList,
		Fields:     Fields(),
		Defaults:   NewDraft,
		FromEntity: FromRepository,
		ToCreate:   Draft.ToCreate,
		ToUpdate:   func(seed, d Draft) domain.UpdateOpts { return d.ToUpdate(seed) },
		Detail:     Detail,
		Filters: []area.FilterFlag{
			{Name: "provider", Usage: "Only repositories hosted at this provider"},
			{Name: "language", Usage: "Only repositories in this language"},
			{Name: "visibility", Usage: "Only repositories with this visibility (" + shared.JoinEnum(domain.Visibilities()) + ")"},
		},
		Filter: Filter,
	}
}
