// Package views adapts domains and their DNS records to the list, form and
// detail view-models.
package views

import (
	"fmt"
	"strconv"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/area"
	"nathanbeddoewebdev/opsdeck/internal/detail"
	"nathanbeddoewebdev/opsdeck/internal/display"
	"nathanbeddoewebdev/opsdeck/internal/dns/domain"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/resource"
)

// Def is the domain area definition.
type Def = area.Def[domain.Domain, domain.CreateOpts, domain.UpdateOpts, Draft]

// Draft is the editable copy of a domain. SSL details and DNS records are
// not part of it: the former is maintained by the API and the latter has
// its own form.
type Draft struct {
	Name             string
	Registrar        string
	RegistrationDate string
	ExpiryDate       string
	AutoRenew        bool
	Owner            string
	Status           domain.Status
	Cost             float64
}

// NewDraft returns the create-mode defaults.
func NewDraft() Draft {
	return Draft{Status: domain.StatusActive, AutoRenew: true}
}

// FromDomain seeds an edit-mode draft.
func FromDomain(d domain.Domain) Draft {
	out := Draft{
		Name:             d.Name,
		Registrar:        d.Registrar,
		RegistrationDate: d.RegistrationDate,
		ExpiryDate:       d.ExpiryDate,
		AutoRenew:        d.AutoRenew,
		Owner:            d.Owner,
		Status:           d.Status,
	}
	if d.Cost != nil {
		out.Cost = *d.Cost
	}
	return out
}

// ToCreate converts a completed draft into create options.
func (d Draft) ToCreate() domain.CreateOpts {
	cost := d.Cost
	return domain.CreateOpts{
		Name:             d.Name,
		Registrar:        d.Registrar,
		RegistrationDate: d.RegistrationDate,
		ExpiryDate:       d.ExpiryDate,
		AutoRenew:        d.AutoRenew,
		Owner:            d.Owner,
		Status:           d.Status,
		Cost:             &cost,
	}
}

// ToUpdate sends only the fields that differ from seed.
func (d Draft) ToUpdate(seed Draft) domain.UpdateOpts {
	return domain.UpdateOpts{
		Name:             area.Changed(seed.Name, d.Name),
		Registrar:        area.Changed(seed.Registrar, d.Registrar),
		RegistrationDate: area.Changed(seed.RegistrationDate, d.RegistrationDate),
		ExpiryDate:       area.Changed(seed.ExpiryDate, d.ExpiryDate),
		AutoRenew:        area.Changed(seed.AutoRenew, d.AutoRenew),
		Owner:            area.Changed(seed.Owner, d.Owner),
		Status:           area.Changed(seed.Status, d.Status),
		Cost:             area.Changed(seed.Cost, d.Cost),
	}
}

// Fields is the create and edit form, in display order.
func Fields() []form.Field[Draft] {
	return []form.Field[Draft]{
		form.Text("name", "Domain name", func(d *Draft) *string { return &d.Name }).Require().WithHint("example.com"),
		form.Text("registrar", "Registrar", func(d *Draft) *string { return &d.Registrar }).Require(),
		form.Date("registrationDate", "Registration date", func(d *Draft) *string { return &d.RegistrationDate }).Require(),
		form.Date("expiryDate", "Expiry date", func(d *Draft) *string { return &d.ExpiryDate }).Require(),
		form.Bool("autoRenew", "Auto-renew", func(d *Draft) *bool { return &d.AutoRenew }),
		form.Text("owner", "Owner", func(d *Draft) *string { return &d.Owner }).Require(),
		form.Enum("status", "Status", domain.Statuses(), func(d *Draft) *domain.Status { return &d.Status }).Require(),
		form.Float("cost", "Annual cost", func(d *Draft) *float64 { return &d.Cost }),
	}
}

// expiry labels a domain's expiry date relative to today.
func expiry(d domain.Domain) string {
	info, err := display.ExpiryFromString(d.ExpiryDate, time.Now())
	if err != nil {
		return d.ExpiryDate
	}
	return d.ExpiryDate + " (" + info.Label() + ")"
}

func sslStatus(d domain.Domain) string {
	if d.SSL == nil {
		return "-"
	}
	return string(d.SSL.Status)
}

// NewList returns the domain list view-model. Search covers name,
// registrar and owner; registrar options come from the loaded domains.
func NewList() *listing.List[domain.Domain] {
	return listing.New(listing.Config[domain.Domain]{
		Search: func(d domain.Domain) []string { return []string{d.Name, d.Registrar, d.Owner} },
		Facets: []listing.Facet[domain.Domain]{
			{
				Name:    "status",
				Label:   "Status",
				Value:   func(d domain.Domain) string { return string(d.Status) },
				Options: shared.EnumStrings(domain.Statuses()),
			},
			{
				Name:  "registrar",
				Label: "Registrar",
				Value: func(d domain.Domain) string { return d.Registrar },
			},
		},
		Columns: []listing.Column[domain.Domain]{
			{Header: "ID", Value: func(d domain.Domain) string { return d.ID }},
			{Header: "NAME", Value: func(d domain.Domain) string { return d.Name }},
			{Header: "REGISTRAR", Value: func(d domain.Domain) string { return d.Registrar }},
			{Header: "STATUS", Value: func(d domain.Domain) string { return string(d.Status) }},
			{Header: "EXPIRES", Value: expiry},
			{Header: "AUTO-RENEW", Value: func(d domain.Domain) string { return yesNo(d.AutoRenew) }},
			{Header: "SSL", Value: sslStatus},
			{Header: "RECORDS", Value: func(d domain.Domain) string { return strconv.Itoa(len(d.DNSRecords)) }},
		},
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Detail renders a domain with its SSL block and DNS table.
func Detail(d domain.Domain) []detail.Row {
	cost := "-"
	if d.Cost != nil {
		cost = fmt.Sprintf("$%.2f/yr", *d.Cost)
	}
	rows := []detail.Row{
		{Label: "ID", Value: d.ID},
		{Label: "Name", Value: d.Name},
		{Label: "Status", Value: string(d.Status)},
		{Label: "Registrar", Value: d.Registrar},
		{Label: "Owner", Value: d.Owner},
		{Label: "Registered", Value: d.RegistrationDate},
		{Label: "Expires", Value: expiry(d)},
		{Label: "Auto-renew", Value: yesNo(d.AutoRenew)},
		{Label: "Cost", Value: cost},
		detail.Section("SSL certificate"),
	}
	if d.SSL == nil {
		rows = append(rows, detail.Row{Label: "Status", Value: "none"})
	} else {
		rows = append(rows,
			detail.Row{Label: "Status", Value: string(d.SSL.Status)},
			detail.Row{Label: "Issuer", Value: d.SSL.Issuer},
			detail.Row{Label: "Valid from", Value: d.SSL.ValidFrom},
			detail.Row{Label: "Valid to", Value: d.SSL.ValidTo},
		)
	}

	rows = append(rows, detail.Section(fmt.Sprintf("DNS records (%d)", len(d.DNSRecords))))
	for _, r := range d.DNSRecords {
		rows = append(rows, detail.Row{
			Label: fmt.Sprintf("%-5s %s", r.Type, r.Name),
			Value: fmt.Sprintf("%s  ttl=%d", r.Value, r.TTL),
		})
	}
	return rows
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
	f.Registrar = values["registrar"]
	return f, nil
}

// Area returns the domain area definition.
func Area() Def {
	return Def{
		Kind:       domain.Kind,
		Nouns:      resource.Nouns{Singular: "domain", Plural: "domains"},
		NewList:    NewList,
		Fields:     Fields(),
		Defaults:   NewDraft,
		FromEntity: FromDomain,
		ToCreate:   Draft.ToCreate,
		ToUpdate:   func(seed, d Draft) domain.UpdateOpts { return d.ToUpdate(seed) },
		Detail:     Detail,
		Filters: []area.FilterFlag{
			{Name: "status", Usage: "Only domains with this status (" + shared.JoinEnum(domain.Statuses()) + ")"},
			{Name: "registrar", Usage: "Only domains held at this registrar"},
		},
		Filter: Filter,
	}
}
