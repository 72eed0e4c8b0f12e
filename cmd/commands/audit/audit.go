package audit

import (
	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"

	"github.com/spf13/cobra"
)

// NewCommand returns the "audit" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View and manage the mutation history",
		Long: "View the local record of create, update and delete operations sent to\n" +
			"the inventory API, and prune old entries.\n\n" +
			"Audit history is stored locally in ~/.config/opsdeck/opsdeck.db.\n" +
			"Disable recording with: opsdeck config set audit off",
		Annotations:  map[string]string{crud.AnnotationStandalone: "true"},
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
