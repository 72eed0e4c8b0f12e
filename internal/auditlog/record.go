package auditlog

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Entry is one persisted mutation against the inventory API.
type Entry struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Kind         string    `json:"kind"`
	Operation    string    `json:"operation"`
	ResourceID   string    `json:"resource_id,omitempty"`
	ResourceName string    `json:"resource_name,omitempty"`
	Source       string    `json:"source,omitempty"`
	Args         string    `json:"args,omitempty"`
	Origin       string    `json:"origin,omitempty"`
	Outcome      string    `json:"outcome"`
	Detail       string    `json:"detail,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
}

// Resource renders the entry's target as "kind:id (name)", omitting
// whatever is missing. An entry without a target renders as "-".
func (e Entry) Resource() string {
	if e.Kind == "" && e.ResourceID == "" && e.ResourceName == "" {
		return "-"
	}

	resource := e.Kind
	if e.ResourceID != "" {
		if resource != "" {
			resource += ":" + e.ResourceID
		} else {
			resource = e.ResourceID
		}
	}
	if e.ResourceName != "" {
		if resource != "" {
			resource += " (" + e.ResourceName + ")"
		} else {
			resource = e.ResourceName
		}
	}
	return resource
}
