// Package tui holds the interactive pieces used by the CLI: huh prompts
// for missing input, the config editor and the dashboard screen. The
// per-section browser lives in package browse.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when the user cancels a prompt or spinner.
var ErrAborted = errors.New("aborted by user")

// Accessible reports whether prompts should run in accessible mode.
func Accessible() bool { return os.Getenv("ACCESSIBLE") != "" }

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// Missing returns the required fields that neither values nor seed
// supply.
func Missing[D any](fields []form.Field[D], seed D, values map[string]string) []form.Field[D] {
	var out []form.Field[D]
	for _, f := range fields {
		if !f.Required || strings.TrimSpace(values[f.Key]) != "" {
			continue
		}
		if strings.TrimSpace(f.Get(&seed)) != "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// PromptMissing asks for every required field that values and seed leave
// empty, writing the answers into values.
func PromptMissing[D any](fields []form.Field[D], seed D, values map[string]string) error {
	missing := Missing(fields, seed, values)
	if len(missing) == 0 {
		return nil
	}

	answers := make([]string, len(missing))
	groups := make([]*huh.Group, len(missing))
	for i, f := range missing {
		groups[i] = huh.NewGroup(fieldPrompt(f, &answers[i]))
	}
	if err := runForm(Accessible(), groups...); err != nil {
		return err
	}
	for i, f := range missing {
		values[f.Key] = answers[i]
	}
	return nil
}

func fieldPrompt[D any](f form.Field[D], value *string) huh.Field {
	if f.Kind == form.KindEnum || f.Kind == form.KindBool {
		return huh.NewSelect[string]().
			Title(f.Label).
			Options(buildFieldOptions(f)...).
			Value(value).
			Height(selectHeight(len(f.Options), 10))
	}

	return huh.NewInput().
		Title(f.Label).
		Placeholder(f.Hint).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(f.Label))
			}
			var scratch D
			if err := f.Set(&scratch, s); err != nil {
				return errors.New(strings.TrimPrefix(err.Error(), domain.ErrInvalid.Error()+": "))
			}
			return nil
		})
}

func buildFieldOptions[D any](f form.Field[D]) []huh.Option[string] {
	opts := make([]huh.Option[string], len(f.Options))
	for i, o := range f.Options {
		opts[i] = huh.NewOption(strings.ReplaceAll(o, "_", " "), o)
	}
	return opts
}

// SelectItem asks the user to pick one of items and returns its id.
func SelectItem[T domain.Entity](title string, items []T) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("nothing to choose from")
	}
	var id string
	field := huh.NewSelect[string]().
		Title(title).
		Options(buildItemOptions(items)...).
		Value(&id).
		Height(selectHeight(len(items), 12))
	if err := runForm(Accessible(), huh.NewGroup(field)); err != nil {
		return "", err
	}
	return id, nil
}

func buildItemOptions[T domain.Entity](items []T) []huh.Option[string] {
	opts := make([]huh.Option[string], len(items))
	for i, it := range items {
		label := it.Label()
		if label == "" {
			label = it.Key()
		}
		opts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", label, it.Key()), it.Key())
	}
	return opts
}

// Confirm asks a yes/no question that defaults to no.
func Confirm(title, description, affirmative string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative(affirmative).
		Negative("Cancel").
		Value(&ok)
	if err := runForm(Accessible(), huh.NewGroup(field)); err != nil {
		return false, err
	}
	return ok, nil
}

// Spin runs action behind a spinner written to w. The action receives a
// context derived from ctx that is cancelled if the user aborts.
func Spin(ctx context.Context, w io.Writer, title string, action func(ctx context.Context) error) error {
	err := spinner.New().
		Title(title).
		Accessible(Accessible()).
		Output(w).
		Context(ctx).
		ActionWithErr(action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrAborted
	}
	return err
}

// selectHeight picks a select height that shows every option up to max.
func selectHeight(optionCount, max int) int {
	if optionCount < 1 {
		return 1
	}
	if optionCount+2 < max {
		return optionCount + 2
	}
	return max
}
