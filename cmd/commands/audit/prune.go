package audit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/auditlog"

	"github.com/spf13/cobra"
)

// PruneCommand returns "audit prune".
func PruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete audit entries older than a duration",
		Long: `Delete audit entries older than a duration, optionally for one
resource kind only.

Examples:
  opsdeck audit prune --older-than 30d
  opsdeck audit prune --older-than 72h --kind storage`,
		Args:         cobra.NoArgs,
		RunE:         runPrune,
		SilenceUsage: true,
	}

	cmd.Flags().String("older-than", "", "Remove entries older than this duration (e.g. 30d, 72h)")
	cmd.Flags().String("kind", "", "Only remove entries of this resource kind")

	return cmd
}

func runPrune(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("older-than")
	kind, _ := cmd.Flags().GetString("kind")
	kind = strings.ToLower(strings.TrimSpace(kind))

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("--older-than is required")
	}
	age, err := parseDuration(raw)
	if err != nil {
		return err
	}

	repo, err := auditlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	removed, err := repo.Prune(cmd.Context(), age, kind)
	if err != nil {
		return err
	}

	noun := "entries"
	if removed == 1 {
		noun = "entry"
	}
	scope := ""
	if kind != "" {
		scope = " " + kind
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d%s audit %s.\n", removed, scope, noun)
	return nil
}

// parseDuration accepts Go durations plus a whole-day "d" suffix.
func parseDuration(input string) (time.Duration, error) {
	var d time.Duration
	if days, ok := strings.CutSuffix(input, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", input)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		var err error
		if d, err = time.ParseDuration(input); err != nil {
			return 0, fmt.Errorf("invalid duration %q", input)
		}
	}

	if d < 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}
