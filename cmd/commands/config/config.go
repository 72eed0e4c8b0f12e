package config

import (
	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage opsdeck configuration",
		Long: "View and modify persistent opsdeck settings.\n\n" +
			"Configuration is stored at ~/.config/opsdeck/config.json.\n" +
			"$" + config.EnvAPIURL + " and the --api-url flag override api-url.\n\n" +
			config.KeysHelp(),
		Annotations: map[string]string{crud.AnnotationStandalone: "true"},
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())
	cmd.AddCommand(ListCommand())

	return cmd
}
