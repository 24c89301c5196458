package commands

import (
	"github.com/spf13/cobra"

	"github.com/kestrelops/pcectl/cmd/pcectl/handlers"
)

// DeleteCluster returns the delete-cluster command.
//
// The command removes the cluster from the PCE and deletes all versions of
// its Vault secret. A missing cluster is reported, not an error.
func DeleteCluster() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-cluster <name>",
		Short: "Delete a container cluster and its stored credentials",
		Long: `Delete removes a container cluster from the PCE and destroys its secrets.

The cluster's Vault secret is deleted in all versions. The two deletes are not
transactional: a Vault failure after the PCE delete surfaces as an error even
though the cluster is already gone.

Example:
  pcectl delete-cluster prod-east`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Delete(cmd.Context(), handlers.DeleteOptions{
				ConfigPath: global.ConfigPath,
				Name:       args[0],
				DryRun:     global.DryRun,
				Verbose:    global.Verbose,
			})
		},
	}

	return cmd
}
