// Package views adapts servers to the list, form and detail view-models.
package views

import (
	"slices"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/area"
	"nathanbeddoewebdev/opsdeck/internal/detail"
	"nathanbeddoewebdev/opsdeck/internal/display"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	"nathanbeddoewebdev/opsdeck/internal/server/domain"
)

// Def is the server area definition.
type Def = area.Def[domain.Server, domain.CreateOpts, domain.UpdateOpts, Draft]

// Draft is the editable copy of a server.
type Draft struct {
	Name            string
	IPAddress       string
	OS              string
	CPU             string
	RAM             string
	Storage         string
	Location        string
	Provider        string
	Status          domain.Status
	Category        domain.Category
	ResponsibleTeam string
	LastPatchDate   string
	Tags            []string
}

// NewDraft returns the create-mode defaults.
func NewDraft() Draft {
	return Draft{Status: domain.StatusOnline, Category: domain.CategoryProduction}
}

// FromServer seeds an edit-mode draft.
func FromServer(s domain.Server) Draft {
	return Draft{
		Name:            s.Name,
		IPAddress:       s.IPAddress,
		OS:              s.OS,
		CPU:             s.Specs.CPU,
		RAM:             s.Specs.RAM,
		Storage:         s.Specs.Storage,
		Location:        s.Location,
		Provider:        s.Provider,
		Status:          s.Status,
		Category:        s.Category,
		ResponsibleTeam: s.ResponsibleTeam,
		LastPatchDate:   s.LastPatchDate,
		Tags:            slices.Clone(s.Tags),
	}
}

func (d Draft) specs() domain.Specs {
	return domain.Specs{CPU: d.CPU, RAM: d.RAM, Storage: d.Storage}
}

// ToCreate converts the draft into a create request.
func (d Draft) ToCreate() domain.CreateOpts {
	return domain.CreateOpts{
		Name:            d.Name,
		IPAddress:       d.IPAddress,
		OS:              d.OS,
		Specs:           d.specs(),
		Location:        d.Location,
		Provider:        d.Provider,
		Status:          d.Status,
		Category:        d.Category,
		ResponsibleTeam: d.ResponsibleTeam,
		LastPatchDate:   d.LastPatchDate,
		Tags:            domain.NormalizeTags(d.Tags),
	}
}

// ToUpdate returns only the fields that differ from seed. The specs block
// is sent whole when any part of it changed.
func (d Draft) ToUpdate(seed Draft) domain.UpdateOpts {
	opts := domain.UpdateOpts{
		Name:            area.Changed(seed.Name, d.Name),
		IPAddress:       area.Changed(seed.IPAddress, d.IPAddress),
		OS:              area.Changed(seed.OS, d.OS),
		Specs:           area.Changed(seed.specs(), d.specs()),
		Location:        area.Changed(seed.Location, d.Location),
		Provider:        area.Changed(seed.Provider, d.Provider),
		Status:          area.Changed(seed.Status, d.Status),
		Category:        area.Changed(seed.Category, d.Category),
		ResponsibleTeam: area.Changed(seed.ResponsibleTeam, d.ResponsibleTeam),
		LastPatchDate:   area.Changed(seed.LastPatchDate, d.LastPatchDate),
	}
	if !slices.Equal(seed.Tags, d.Tags) {
		tags := domain.NormalizeTags(d.Tags)
		if tags == nil {
			tags = []string{}
		}
		opts.Tags = &tags
	}
	return opts
}

// Fields lists the form fields in display order.
func Fields() []form.Field[Draft] {
	return []form.Field[Draft]{
		form.Text("name", "Name", func(d *Draft) *string { return &d.Name }).Require(),
		form.Text("ipAddress", "IP address", func(d *Draft) *string { return &d.IPAddress }).Require().WithHint("192.168.1.10"),
		form.Text("os", "OS", func(d *Draft) *string { return &d.OS }).Require().WithHint("Ubuntu 22.04"),
		form.Text("cpu", "CPU", func(d *Draft) *string { return &d.CPU }).WithHint("8 vCPU"),
		form.Text("ram", "RAM", func(d *Draft) *string { return &d.RAM }).WithHint("32 GB"),
		form.Text("storage", "Storage", func(d *Draft) *string { return &d.Storage }).WithHint("500 GB SSD"),
		form.Text("location", "Location", func(d *Draft) *string { return &d.Location }).Require(),
		form.Text("provider", "Provider", func(d *Draft) *string { return &d.Provider }).Require(),
		form.Enum("status", "Status", domain.Statuses(), func(d *Draft) *domain.Status { return &d.Status }).Require(),
		form.Enum("category", "Category", domain.Categories(), func(d *Draft) *domain.Category { return &d.Category }).Require(),
		form.Text("responsibleTeam", "Responsible team", func(d *Draft) *string { return &d.ResponsibleTeam }).Require(),
		form.Date("lastPatchDate", "Last patch date", func(d *Draft) *string { return &d.LastPatchDate }),
		form.List("tags", "Tags", func(d *Draft) *[]string { return &d.Tags }),
	}
}

// NewList returns the server list view-model. Search covers name, IP
// address and tags.
func NewList() *listing.List[domain.Server] {
	return listing.New(listing.Config[domain.Server]{
		Search: func(s domain.Server) []string {
			return append([]string{s.Name, s.IPAddress}, s.Tags...)
		},
		Facets: []listing.Facet[domain.Server]{
			{
				Name:    "status",
				Label:   "Status",
				Value:   func(s domain.Server) string { return string(s.Status) },
				Options: shared.EnumStrings(domain.Statuses()),
			},
			{
				Name:    "category",
				Label:   "Category",
				Value:   func(s domain.Server) string { return string(s.Category) },
				Options: shared.EnumStrings(domain.Categories()),
			},
		},
		Columns: []listing.Column[domain.Server]{
			{Header: "ID", Value: func(s domain.Server) string { return s.ID }},
			{Header: "NAME", Value: func(s domain.Server) string { return s.Name }},
			{Header: "IP", Value: func(s domain.Server) string { return s.IPAddress }},
			{Header: "STATUS", Value: func(s domain.Server) string { return string(s.Status) }},
			{Header: "CATEGORY", Value: func(s domain.Server) string { return string(s.Category) }},
			{Header: "PROVIDER", Value: func(s domain.Server) string { return s.Provider }},
			{Header: "TEAM", Value: func(s domain.Server) string { return s.ResponsibleTeam }},
		},
	})
}

// Detail renders a server for the detail screen.
func Detail(s domain.Server) []detail.Row {
	patched := "never"
	if s.LastPatchDate != "" {
		patched = s.LastPatchDate + " (" + display.Relative(s.LastPatchDate) + ")"
	}
	tags := strings.Join(s.Tags, ", ")
	if tags == "" {
		tags = "-"
	}
	return []detail.Row{
		{Label: "ID", Value: s.ID},
		{Label: "Name", Value: s.Name},
		{Label: "IP address", Value: s.IPAddress},
		{Label: "Status", Value: string(s.Status)},
		{Label: "Category", Value: string(s.Category)},
		{Label: "Location", Value: s.Location},
		{Label: "Provider", Value: s.Provider},
		{Label: "Team", Value: s.ResponsibleTeam},
		{Label: "Last patched", Value: patched},
		{Label: "Tags", Value: tags},
		detail.Section("Specifications"),
		{Label: "OS", Value: s.OS},
		{Label: "CPU", Value: s.Specs.CPU},
		{Label: "RAM", Value: s.Specs.RAM},
		{Label: "Storage", Value: s.Specs.Storage},
	}
}

// Filter builds a list filter from flag values.
func Filter(values map[string]string) (resource.Filter, error) {
	var f domain.ListFilter
	if v := values["status"]; v != "" {
		st, err := domain.ParseStatus(v)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	if v := values["category"]; v != "" {
		c, err := domain.ParseCategory(v)
		if err != nil {
			return nil, err
		}
		f.Category = c
	}
	return f, nil
}

// Area returns the server area definition.
func Area() Def {
	return Def{
		Kind:       domain.Kind,
		Nouns:      resource.Nouns{Singular: "server", Plural: "servers"},
		NewList:    NewList,
		Fields:     Fields(),
		Defaults:   NewDraft,
		FromEntity: FromServer,
		ToCreate:   Draft.ToCreate,
		ToUpdate:   func(seed, d Draft) domain.UpdateOpts { return d.ToUpdate(seed) },
		Detail:     Detail,
		Filters: []area.FilterFlag{
			{Name: "status", Usage: "Only servers with this status (" + shared.JoinEnum(domain.Statuses()) + ")"},
			{Name: "category", Usage: "Only servers in this category (" + shared.JoinEnum(domain.Categories()) + ")"},
		},
		Filter: Filter,
	}
}
