package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/logging"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "api-url").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set validates and applies a value to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string) error

	// Clear resets the key so the default applies again.
	Clear func(cfg *Config)
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "api-url",
		Description: "Base URL of the inventory API (e.g. https://ops.example.com/api/v1)",
		Get:         func(cfg *Config) string { return cfg.APIURL },
		Set: func(cfg *Config, v string) error {
			u, err := url.Parse(v)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("api-url must be an absolute http(s) URL, got %q", v)
			}
			cfg.APIURL = strings.TrimRight(v, "/")
			return nil
		},
		Clear: func(cfg *Config) { cfg.APIURL = "" },
	},
	{
		Name:        "timeout",
		Description: "Per-request timeout in seconds",
		Get: func(cfg *Config) string {
			if cfg.Timeout == 0 {
				return ""
			}
			return strconv.Itoa(cfg.Timeout)
		},
		Set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("timeout must be a positive number of seconds, got %q", v)
			}
			cfg.Timeout = n
			return nil
		},
		Clear: func(cfg *Config) { cfg.Timeout = 0 },
	},
	{
		Name:        "log-level",
		Description: "Log verbosity: debug, info, warn, error or disabled",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set: func(cfg *Config, v string) error {
			v = strings.ToLower(v)
			if _, err := logging.ParseLevel(v); err != nil {
				return err
			}
			cfg.LogLevel = v
			return nil
		},
		Clear: func(cfg *Config) { cfg.LogLevel = "" },
	},
	{
		Name:        "log-file",
		Description: "Append logs to this file instead of stderr",
		Get:         func(cfg *Config) string { return cfg.LogFile },
		Set: func(cfg *Config, v string) error {
			cfg.LogFile = v
			return nil
		},
		Clear: func(cfg *Config) { cfg.LogFile = "" },
	},
	{
		Name:        "audit",
		Description: "Record create/update/delete operations locally: on or off",
		Get:         func(cfg *Config) string { return cfg.Audit },
		Set: func(cfg *Config, v string) error {
			v = strings.ToLower(v)
			if v != "on" && v != "off" {
				return fmt.Errorf("audit must be \"on\" or \"off\", got %q", v)
			}
			cfg.Audit = v
			return nil
		},
		Clear: func(cfg *Config) { cfg.Audit = "" },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
