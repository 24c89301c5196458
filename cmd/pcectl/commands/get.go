package commands

import (
	"github.com/spf13/cobra"

	"github.com/kestrelops/pcectl/cmd/pcectl/handlers"
)

// GetCluster returns the get-cluster command.
func GetCluster() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-cluster <name>",
		Short: "Show details of a container cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Get(cmd.Context(), handlers.GetOptions{
				ConfigPath: global.ConfigPath,
				Name:       args[0],
				Verbose:    global.Verbose,
			})
		},
	}

	return cmd
}
