package devserver

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	dns "nathanbeddoewebdev/opsdeck/internal/dns/domain"
	email "nathanbeddoewebdev/opsdeck/internal/email/domain"
	repo "nathanbeddoewebdev/opsdeck/internal/repo/domain"
	server "nathanbeddoewebdev/opsdeck/internal/server/domain"
	storage "nathanbeddoewebdev/opsdeck/internal/storage/domain"

	"gopkg.in/yaml.v2"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial content of every collection.
type Seed struct {
	Servers      []server.Server   `json:"servers"`
	Domains      []dns.Domain      `json:"domains"`
	Emails       []email.Account   `json:"emails"`
	Repositories []repo.Repository `json:"repositories"`
	Storage      []storage.Bucket  `json:"storage"`
}

// DefaultSeed returns the bundled demo inventory.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads fixtures from a YAML file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("devserver: failed to read seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes YAML fixtures. Keys use the API's camelCase names, so
// the document is converted to JSON and decoded with the entity types'
// own rules, including enum validation.
func ParseSeed(data []byte) (*Seed, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("devserver: failed to parse seed: %w", err)
	}
	js, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return nil, fmt.Errorf("devserver: failed to convert seed: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(js, &seed); err != nil {
		return nil, fmt.Errorf("devserver: invalid seed: %w", err)
	}
	return &seed, nil
}

// jsonCompatible rewrites yaml.v2's map[interface{}]interface{} values into
// string-keyed maps.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return m
	case []any:
		for i := range t {
			t[i] = jsonCompatible(t[i])
		}
		return t
	default:
		return v
	}
}
