// Package domain defines storage volumes and buckets tracked by the
// inventory.
package domain

import (
	"math"
	"slices"

	shared "nathanbeddoewebdev/opsdeck/internal/domain"
)

// Kind names this entity in audit entries, saved views and messages.
const Kind = "storage"

// Type is the storage class of a bucket.
type Type string

const (
	TypeObject Type = "object"
	TypeBlock  Type = "block"
	TypeFile   Type = "file"
)

var types = []Type{TypeObject, TypeBlock, TypeFile}

// Types returns every storage type in display order.
func Types() []Type { return slices.Clone(types) }

func (t Type) Valid() bool { return shared.IsMember(t, types) }

func (t *Type) UnmarshalText(text []byte) error {
	return shared.UnmarshalEnum("storage type", text, types, t)
}

// ParseType parses s case-insensitively.
func ParseType(s string) (Type, error) { return shared.ParseEnum("storage type", s, types) }

// Providers offered by the create form.
var Providers = []string{
	"AWS S3", "AWS EBS", "AWS EFS",
	"GCP Cloud Storage", "GCP Persistent Disk",
	"Azure Blob", "Azure Files",
}

const (
	// GiB is the multiplier between the form's gigabytes and stored bytes.
	GiB = 1 << 30

	DefaultRegion     = "ap-south-1"
	DefaultCapacityGB = 100
)

// Bucket is one storage bucket or volume. UsageBytes and CreatedDate are
// maintained by the API.
type Bucket struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	Type          Type   `json:"type"`
	Region        string `json:"region"`
	UsageBytes    int64  `json:"usageBytes"`
	CapacityBytes int64  `json:"capacityBytes"`
	CreatedDate   string `json:"createdDate"`
	IsPublic      bool   `json:"isPublic"`
}

var _ shared.Entity = Bucket{}

func (b Bucket) Key() string   { return b.ID }
func (b Bucket) Label() string { return b.Name }

// CapacityGB converts a stored byte count to whole gigabytes, rounding to
// the nearest.
func CapacityGB(bytes int64) int64 {
	return int64(math.Round(float64(bytes) / GiB))
}

// MaxCapacityGB is the largest capacity whose byte count fits in an int64.
const MaxCapacityGB = math.MaxInt64 / GiB

// CapacityBytes converts whole gigabytes to bytes. CapacityGB(CapacityBytes(n))
// is n for every n in [0, MaxCapacityGB].
func CapacityBytes(gb int64) int64 {
	return gb * GiB
}
