package auditlog

import "context"

// Metadata describes where a mutation was issued from. Commands attach it
// to their context; the service layer copies it into each Entry.
type Metadata struct {
	// Source is the issuing surface, e.g. "opsdeck server create" or "tui".
	Source string
	// Args are the sanitized command-line arguments.
	Args []string
	// Origin is the API base URL the mutation was sent to.
	Origin string
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context. Empty fields in meta
// keep the values already present on ctx.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		Source: pick(meta.Source, existing.Source),
		Origin: pick(meta.Origin, existing.Origin),
		Args:   existing.Args,
	}
	if len(meta.Args) > 0 {
		merged.Args = SanitizeArgs(meta.Args)
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
