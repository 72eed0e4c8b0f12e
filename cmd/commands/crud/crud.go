// Package crud builds the list/show/create/update/delete/browse command
// tree shared by every inventory section.
package crud

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/area"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	"nathanbeddoewebdev/opsdeck/internal/tui"
	"nathanbeddoewebdev/opsdeck/internal/tui/browse"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	// AnnotationTUI marks commands that take over the terminal.
	AnnotationTUI = "opsdeck/tui"

	// AnnotationStandalone marks commands that run without the API client
	// and local stores.
	AnnotationStandalone = "opsdeck/standalone"
)

// Spec describes one section's command tree.
type Spec[T domain.Entity, C resource.Input, U resource.Patch, D any] struct {
	Use     string
	Aliases []string
	Short   string

	Area    area.Def[T, C, U, D]
	Service func(a *app.App) browse.Service[T, C, U]

	// Extras adds nested screens to the browser. Optional.
	Extras func(ctx context.Context, a *app.App) []browse.Extra[T]
}

// isTerminal reports whether prompts and spinners can be shown.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NewCommand returns the parent command for one section.
func NewCommand[T domain.Entity, C resource.Input, U resource.Patch, D any](s Spec[T, C, U, D]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     s.Use,
		Aliases: s.Aliases,
		Short:   s.Short,
		Long: s.Short + ".\n\n" +
			"Run \"opsdeck " + s.Use + " browse\" for the interactive list.",
	}

	cmd.AddCommand(ListCommand(s))
	cmd.AddCommand(ShowCommand(s))
	cmd.AddCommand(CreateCommand(s))
	cmd.AddCommand(UpdateCommand(s))
	cmd.AddCommand(DeleteCommand(s))
	cmd.AddCommand(BrowseCommand(s))

	return cmd
}

// FlagName converts a form field key such as "ipAddress" to a flag name
// such as "ip-address".
func FlagName(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// addFieldFlags registers one string flag per form field.
func addFieldFlags[D any](cmd *cobra.Command, fields []form.Field[D]) {
	for _, f := range fields {
		cmd.Flags().String(FlagName(f.Key), "", fieldUsage(f))
	}
}

func fieldUsage[D any](f form.Field[D]) string {
	usage := f.Label
	switch {
	case len(f.Options) > 0:
		usage += " (" + strings.Join(f.Options, ", ") + ")"
	case f.Kind == form.KindDate:
		usage += " (YYYY-MM-DD)"
	case f.Kind == form.KindList:
		usage += " (comma-separated)"
	case f.Hint != "":
		usage += " (e.g. " + f.Hint + ")"
	}
	return usage
}

// fieldValues collects the field flags the user set, keyed by field key.
func fieldValues[D any](cmd *cobra.Command, fields []form.Field[D]) map[string]string {
	values := make(map[string]string)
	for _, f := range fields {
		name := FlagName(f.Key)
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, _ := cmd.Flags().GetString(name)
		values[f.Key] = v
	}
	return values
}

// interactive reports whether the command may prompt.
func interactive(cmd *cobra.Command) bool {
	if noInput, _ := cmd.Flags().GetBool("no-input"); noInput {
		return false
	}
	return isTerminal()
}

// run executes action, behind a spinner when the command is interactive.
func run(cmd *cobra.Command, title string, action func(ctx context.Context) error) error {
	if interactive(cmd) {
		return tui.Spin(cmd.Context(), cmd.ErrOrStderr(), title, action)
	}
	return action(cmd.Context())
}

func describe(noun, label, id string) string {
	if label == "" || label == id {
		return fmt.Sprintf("%s %s", noun, id)
	}
	return fmt.Sprintf("%s %q (ID: %s)", noun, label, id)
}
