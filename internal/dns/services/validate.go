package services

import (
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/dns/domain"
)

// DefaultTTL is offered for new records.
const DefaultTTL = 3600

// normalizeRecordName lowercases a record name and strips any trailing dot.
// An empty name means the zone apex, written "@".
func normalizeRecordName(name string) string {
	name = strings.ToLower(strings.TrimRight(strings.TrimSpace(name), "."))
	if name == "" {
		return "@"
	}
	return name
}

func normalizeRecordOpts(opts domain.RecordOpts) domain.RecordOpts {
	opts.Name = normalizeRecordName(opts.Name)
	opts.Value = strings.TrimSpace(opts.Value)
	return opts
}

func normalizeRecordUpdate(opts domain.RecordUpdateOpts) domain.RecordUpdateOpts {
	if opts.Name != nil {
		name := normalizeRecordName(*opts.Name)
		opts.Name = &name
	}
	if opts.Value != nil {
		value := strings.TrimSpace(*opts.Value)
		opts.Value = &value
	}
	return opts
}
