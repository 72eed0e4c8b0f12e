package auditlog

import (
	"net/url"
	"strings"
)

// urlFlags carry URLs that may embed credentials in their userinfo.
var urlFlags = map[string]struct{}{
	"--api-url": {},
}

// SanitizeArgs strips userinfo from URL-valued flags before the arguments
// are stored.
func SanitizeArgs(args []string) []string {
	sanitized := make([]string, 0, len(args))
	redactNext := false

	for _, arg := range args {
		if redactNext {
			sanitized = append(sanitized, RedactURL(arg))
			redactNext = false
			continue
		}

		if _, ok := urlFlags[arg]; ok {
			sanitized = append(sanitized, arg)
			redactNext = true
			continue
		}

		if key, value, ok := strings.Cut(arg, "="); ok {
			if _, ok := urlFlags[key]; ok {
				sanitized = append(sanitized, key+"="+RedactURL(value))
				continue
			}
		}

		sanitized = append(sanitized, arg)
	}

	return sanitized
}

// RedactURL replaces any password in raw with "xxxxx". Values that do not
// parse as URLs are returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
