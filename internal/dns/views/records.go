package views

import (
	"strconv"

	"nathanbeddoewebdev/opsdeck/internal/area"
	"nathanbeddoewebdev/opsdeck/internal/dns/domain"
	"nathanbeddoewebdev/opsdeck/internal/dns/services"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
)

// RecordDraft is the editable copy of a DNS record.
type RecordDraft struct {
	Type  domain.RecordType
	Name  string
	Value string
	TTL   int
}

// NewRecordDraft returns the defaults for a new record: an A record at the
// apex with the default TTL.
func NewRecordDraft() RecordDraft {
	return RecordDraft{Type: domain.RecordTypeA, Name: "@", TTL: services.DefaultTTL}
}

// FromRecord seeds an edit-mode record draft.
func FromRecord(r domain.Record) RecordDraft {
	return RecordDraft{Type: r.Type, Name: r.Name, Value: r.Value, TTL: r.TTL}
}

// ToOpts converts a completed draft into record options.
func (d RecordDraft) ToOpts() domain.RecordOpts {
	return domain.RecordOpts{Type: d.Type, Name: d.Name, Value: d.Value, TTL: d.TTL}
}

// ToUpdate sends only the fields that differ from seed.
func (d RecordDraft) ToUpdate(seed RecordDraft) domain.RecordUpdateOpts {
	return domain.RecordUpdateOpts{
		Type:  area.Changed(seed.Type, d.Type),
		Name:  area.Changed(seed.Name, d.Name),
		Value: area.Changed(seed.Value, d.Value),
		TTL:   area.Changed(seed.TTL, d.TTL),
	}
}

// RecordFields lists the record form fields.
func RecordFields() []form.Field[RecordDraft] {
	return []form.Field[RecordDraft]{
		form.Enum("type", "Type", domain.RecordTypes(), func(d *RecordDraft) *domain.RecordType { return &d.Type }).Require(),
		form.Text("name", "Name", func(d *RecordDraft) *string { return &d.Name }).Require().WithHint("@ or www"),
		form.Text("value", "Value", func(d *RecordDraft) *string { return &d.Value }).Require(),
		form.Int("ttl", "TTL (seconds)", func(d *RecordDraft) *int { return &d.TTL }).Require(),
	}
}

// NewRecordForm returns a closed record form.
func NewRecordForm() *form.Model[RecordDraft] {
	return form.New(RecordFields())
}

// NewRecordList returns the view-model for one domain's record table.
func NewRecordList() *listing.List[domain.Record] {
	return listing.New(listing.Config[domain.Record]{
		Search: func(r domain.Record) []string { return []string{r.Name, r.Value} },
		Facets: []listing.Facet[domain.Record]{
			{
				Name:    "type",
				Label:   "Type",
				Value:   func(r domain.Record) string { return string(r.Type) },
				Options: shared.EnumStrings(domain.RecordTypes()),
			},
		},
		Columns: []listing.Column[domain.Record]{
			{Header: "ID", Value: func(r domain.Record) string { return r.ID }},
			{Header: "TYPE", Value: func(r domain.Record) string { return string(r.Type) }},
			{Header: "NAME", Value: func(r domain.Record) string { return r.Name }},
			{Header: "VALUE", Value: func(r domain.Record) string { return r.Value }},
			{Header: "TTL", Value: func(r domain.Record) string { return strconv.Itoa(r.TTL) }},
		},
	})
}
