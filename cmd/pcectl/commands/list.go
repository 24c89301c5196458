package commands

import (
	"github.com/spf13/cobra"

	"github.com/kestrelops/pcectl/cmd/pcectl/handlers"
)

// ListClusters returns the list-clusters command.
func ListClusters() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-clusters",
		Short: "List all container clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.List(cmd.Context(), handlers.ListOptions{
				ConfigPath: global.ConfigPath,
				Verbose:    global.Verbose,
			})
		},
	}

	return cmd
}
