package domain

import (
	"fmt"
	"net"
	"slices"

	shared "nathanbeddoewebdev/opsdeck/internal/domain"
)

// RecordType represents a DNS record type.
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeMX    RecordType = "MX"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeNS    RecordType = "NS"
	RecordTypeAAAA  RecordType = "AAAA"
)

var recordTypes = []RecordType{RecordTypeA, RecordTypeCNAME, RecordTypeMX, RecordTypeTXT, RecordTypeNS, RecordTypeAAAA}

// RecordTypes returns every supported record type.
func RecordTypes() []RecordType { return slices.Clone(recordTypes) }

func (t RecordType) Valid() bool { return shared.IsMember(t, recordTypes) }

func (t *RecordType) UnmarshalText(text []byte) error {
	return shared.UnmarshalEnum("record type", text, recordTypes, t)
}

// ParseRecordType resolves a record type case-insensitively.
func ParseRecordType(s string) (RecordType, error) {
	return shared.ParseEnum("record type", s, recordTypes)
}

// Record is a single DNS record owned by exactly one Domain. Its ID is
// unique within that domain.
type Record struct {
	ID    string     `json:"id"`
	Type  RecordType `json:"type"`
	Name  string     `json:"name"`
	Value string     `json:"value"`
	// TTL is the time-to-live in seconds.
	TTL int `json:"ttl"`
}

var _ shared.Entity = Record{}

func (r Record) Key() string   { return r.ID }
func (r Record) Label() string { return string(r.Type) + " " + r.Name }

// CheckContent verifies that value is plausible for the record type. A and
// AAAA records must hold an address of the matching family.
func CheckContent(t RecordType, value string) error {
	switch t {
	case RecordTypeA:
		ip := net.ParseIP(value)
		if ip == nil || ip.To4() == nil {
			return fmt.Errorf("%w: A record value must be a valid IPv4 address, got %q", shared.ErrInvalid, value)
		}
	case RecordTypeAAAA:
		ip := net.ParseIP(value)
		if ip == nil || ip.To4() != nil {
			return fmt.Errorf("%w: AAAA record value must be a valid IPv6 address, got %q", shared.ErrInvalid, value)
		}
	}
	return nil
}
