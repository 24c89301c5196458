package commands

import (
	"github.com/spf13/cobra"

	"github.com/kestrelops/pcectl/cmd/pcectl/handlers"
)

// SyncNamespaces returns the sync-namespaces command.
//
// The command lists the namespaces of the local Kubernetes cluster and
// creates a workload profile for every namespace the PCE does not know yet.
// The sync is additive only.
func SyncNamespaces() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync-namespaces <name>",
		Short: "Create workload profiles for unprofiled Kubernetes namespaces",
		Long: `Sync reconciles the PCE's workload profiles with the live namespaces.

Each namespace of the local Kubernetes cluster that has no workload profile in
the named container cluster gets a new managed, visibility-only profile.
Profiles for namespaces that no longer exist are never removed.

Example:
  pcectl sync-namespaces prod-east`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Sync(cmd.Context(), handlers.SyncOptions{
				ConfigPath: global.ConfigPath,
				Name:       args[0],
				DryRun:     global.DryRun,
				Verbose:    global.Verbose,
			})
		},
	}

	return cmd
}
