package validation

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/domain"
)

// Check is one optional field that, when supplied, must not be blank.
type Check struct {
	name     string
	supplied bool
	blank    bool
}

// Field builds a Check for a pointer-valued partial-update field.
func Field[S ~string](name string, v *S) Check {
	if v == nil {
		return Check{name: name}
	}
	return Check{name: name, supplied: true, blank: strings.TrimSpace(string(*v)) == ""}
}

// NotBlank rejects supplied fields that are empty. Partial updates use
// pointer fields, so a nil field means "unchanged" while a pointer to ""
// would clear a required value.
func NotBlank(checks ...Check) error {
	var blank []string
	for _, c := range checks {
		if c.supplied && c.blank {
			blank = append(blank, c.name)
		}
	}
	if len(blank) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalid, strings.Join(blank, ", "))
}
