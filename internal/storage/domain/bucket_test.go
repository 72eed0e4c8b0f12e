package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestCapacityRoundTrip(t *testing.T) {
	for _, gb := range []int64{0, 1, 100, 1000, 4096} {
		if got := CapacityGB(CapacityBytes(gb)); got != gb {
			t.Errorf("CapacityGB(CapacityBytes(%d)) = %d", gb, got)
		}
	}
}

func TestCapacityGB_RoundsToNearest(t *testing.T) {
	tests := []struct {
		bytes int64
		want  int64
	}{
		{GiB + GiB/4, 1},
		{GiB + GiB/2, 2},
		{100*GiB - 1, 100},
		{1, 0},
	}
	for _, tt := range tests {
		if got := CapacityGB(tt.bytes); got != tt.want {
			t.Errorf("CapacityGB(%d) = %d, want %d", tt.bytes, got, tt.want)
		}
	}
}

func TestBucket_Decode(t *testing.T) {
	var b Bucket
	body := `{"id":"st-1","name":"media","provider":"AWS S3","type":"object","region":"us-east-1","usageBytes":1073741824,"capacityBytes":10737418240,"createdDate":"2025-05-01","isPublic":true}`
	if err := json.Unmarshal([]byte(body), &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Type != TypeObject || !b.IsPublic || CapacityGB(b.CapacityBytes) != 10 {
		t.Errorf("unexpected bucket: %+v", b)
	}
	if err := json.Unmarshal([]byte(`{"type":"tape"}`), &b); err == nil {
		t.Error("expected unknown type to fail decoding")
	}
}

func TestCreateOpts_Validate(t *testing.T) {
	opts := CreateOpts{Name: "logs", Provider: "AWS S3", Type: TypeObject, Region: DefaultRegion, CapacityBytes: CapacityBytes(DefaultCapacityGB)}
	if err := opts.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts.Region = ""
	opts.CapacityBytes = 0
	err := opts.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	for _, want := range []string{"region is required", "capacityBytes must be greater than 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}

	data, _ := json.Marshal(opts)
	for _, key := range []string{`"usageBytes"`, `"createdDate"`} {
		if strings.Contains(string(data), key) {
			t.Errorf("create body should not carry %s: %s", key, data)
		}
	}
}

func TestListFilter_Query(t *testing.T) {
	q, err := ListFilter{Type: TypeBlock, Region: "eu-west-1"}.Query()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := q.Encode(), "region=eu-west-1&type=block"; got != want {
		t.Errorf("Query() = %q, want %q", got, want)
	}
	if _, err := (ListFilter{Type: "tape"}).Query(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
