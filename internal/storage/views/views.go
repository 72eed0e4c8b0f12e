// Package views adapts storage buckets to the list, form and detail
// view-models.
package views

import (
	"fmt"

	"nathanbeddoewebdev/opsdeck/internal/area"
	"nathanbeddoewebdev/opsdeck/internal/detail"
	"nathanbeddoewebdev/opsdeck/internal/display"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	"nathanbeddoewebdev/opsdeck/internal/storage/domain"
)

// Def is the storage area definition.
type Def = area.Def[domain.Bucket, domain.CreateOpts, domain.UpdateOpts, Draft]

// Draft is the editable copy of a bucket. Capacity is edited in whole GB;
// the bucket itself stores bytes.
type Draft struct {
	Name       string
	Provider   string
	Type       domain.Type
	Region     string
	CapacityGB int64
	IsPublic   bool
}

// NewDraft returns the create-form defaults.
func NewDraft() Draft {
	return Draft{
		Provider:   domain.Providers[0],
		Type:       domain.TypeObject,
		Region:     domain.DefaultRegion,
		CapacityGB: domain.DefaultCapacityGB,
	}
}

// FromBucket seeds an edit-mode draft, rounding capacity to the nearest GB.
func FromBucket(b domain.Bucket) Draft {
	return Draft{
		Name:       b.Name,
		Provider:   b.Provider,
		Type:       b.Type,
		Region:     b.Region,
		CapacityGB: domain.CapacityGB(b.CapacityBytes),
		IsPublic:   b.IsPublic,
	}
}

// ToCreate converts a completed draft into create options, capacity in bytes.
func (d Draft) ToCreate() domain.CreateOpts {
	return domain.CreateOpts{
		Name:          d.Name,
		Provider:      d.Provider,
		Type:          d.Type,
		Region:        d.Region,
		CapacityBytes: domain.CapacityBytes(d.CapacityGB),
		IsPublic:      d.IsPublic,
	}
}

// ToUpdate sends capacity only when the GB figure changed, so a stored
// value that is not a whole number of GB survives unrelated edits.
func (d Draft) ToUpdate(seed Draft) domain.UpdateOpts {
	opts := domain.UpdateOpts{
		Name:     area.Changed(seed.Name, d.Name),
		Provider: area.Changed(seed.Provider, d.Provider),
		Type:     area.Changed(seed.Type, d.Type),
		Region:   area.Changed(seed.Region, d.Region),
		IsPublic: area.Changed(seed.IsPublic, d.IsPublic),
	}
	if seed.CapacityGB != d.CapacityGB {
		b := domain.CapacityBytes(d.CapacityGB)
		opts.CapacityBytes = &b
	}
	return opts
}

// Fields is the create and edit form, in display order.
func Fields() []form.Field[Draft] {
	return []form.Field[Draft]{
		form.Text("name", "Name", func(d *Draft) *string { return &d.Name }).Require(),
		form.Choice("provider", "Provider", domain.Providers, func(d *Draft) *string { return &d.Provider }).Require(),
		form.Enum("type", "Type", domain.Types(), func(d *Draft) *domain.Type { return &d.Type }).Require(),
		form.Text("region", "Region", func(d *Draft) *string { return &d.Region }).Require(),
		form.Int("capacityGB", "Capacity (GB)", func(d *Draft) *int64 { return &d.CapacityGB }).
			Max(domain.MaxCapacityGB).
			Require(),
		form.Bool("isPublic", "Public access", func(d *Draft) *bool { return &d.IsPublic }),
	}
}

// Usage renders "120.0 GB / 500.0 GB (24%)".
func Usage(b domain.Bucket) string {
	pct := display.UsagePercent(float64(b.UsageBytes), float64(b.CapacityBytes))
	return fmt.Sprintf("%s / %s (%d%%)", display.FormatBytes(b.UsageBytes), display.FormatBytes(b.CapacityBytes), pct)
}

func access(b domain.Bucket) string {
	if b.IsPublic {
		return "public"
	}
	return "private"
}

// NewList returns the bucket list view-model. Search covers name and
// region; provider options come from the loaded buckets.
func NewList() *listing.List[domain.Bucket] {
	return listing.New(listing.Config[domain.Bucket]{
		Search: func(b domain.Bucket) []string { return []string{b.Name, b.Region} },
		Facets: []listing.Facet[domain.Bucket]{
			{
				Name:    "type",
				Label:   "Type",
				Value:   func(b domain.Bucket) string { return string(b.Type) },
				Options: shared.EnumStrings(domain.Types()),
			},
			{
				Name:  "provider",
				Label: "Provider",
				Value: func(b domain.Bucket) string { return b.Provider },
			},
		},
		Columns: []listing.Column[domain.Bucket]{
			{Header: "ID", Value: func(b domain.Bucket) string { return b.ID }},
			{Header: "NAME", Value: func(b domain.Bucket) string { return b.Name }},
			{Header: "PROVIDER", Value: func(b domain.Bucket) string { return b.Provider }},
			{Header: "TYPE", Value: func(b domain.Bucket) string { return string(b.Type) }},
			{Header: "REGION", Value: func(b domain.Bucket) string { return b.Region }},
			{Header: "USAGE", Value: Usage},
			{Header: "ACCESS", Value: access},
		},
	})
}

// Detail lists the rows of the detail pane.
func Detail(b domain.Bucket) []detail.Row {
	return []detail.Row{
		{Label: "ID", Value: b.ID},
		{Label: "Name", Value: b.Name},
		{Label: "Provider", Value: b.Provider},
		{Label: "Type", Value: string(b.Type)},
		{Label: "Region", Value: b.Region},
		{Label: "Usage", Value: Usage(b)},
		{Label: "Level", Value: string(display.UsageLevel(display.UsagePercent(float64(b.UsageBytes), float64(b.CapacityBytes))))},
		{Label: "Access", Value: access(b)},
		{Label: "Created", Value: b.CreatedDate},
	}
}

// Filter builds a list filter from saved-view values, rejecting unknown types.
func Filter(values map[string]string) (resource.Filter, error) {
	f := domain.ListFilter{Provider: values["provider"], Region: values["region"]}
	if v := values["type"]; v != "" {
		typ, err := domain.ParseType(v)
		if err != nil {
			return nil, err
		}
		f.Type = typ
	}
	return f, nil
}

// Area returns the storage area definition.
func Area() Def {
	return Def{
		Kind:       domain.Kind,
		Nouns:      resource.Nouns{Singular: "storage bucket", Plural: "storage buckets"},
		NewList:    NewList,
		Fields:     Fields(),
		Defaults:   NewDraft,
		FromEntity: FromBucket,
		ToCreate:   Draft.ToCreate,
		ToUpdate:   func(seed, d Draft) domain.UpdateOpts { return d.ToUpdate(seed) },
		Detail:     Detail,
		Filters: []area.FilterFlag{
			{Name: "provider", Usage: "Only buckets at this provider"},
			{Name: "type", Usage: "Only buckets of this type (" + shared.JoinEnum(domain.Types()) + ")"},
			{Name: "region", Usage: "Only buckets in this region"},
		},
		Filter: Filter,
	}
}
