// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing
// and flag binding. Command execution is delegated to handler functions in the
// handlers package.
package commands

import "github.com/spf13/cobra"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	Verbose    bool
	DryRun     bool
	ConfigPath string
}

var global globalOptions

// Root returns the root command for the pcectl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pcectl",
		Short: "Manage Illumio container clusters and their Kubernetes integration",
	}

	cmd.PersistentFlags().BoolVar(&global.Verbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&global.DryRun, "dry-run", false, "Simulate actions without making changes")
	cmd.PersistentFlags().StringVar(&global.ConfigPath, "config", "", "Path to config file")

	cmd.AddCommand(CreateCluster())
	cmd.AddCommand(DeleteCluster())
	cmd.AddCommand(GetCluster())
	cmd.AddCommand(ListClusters())
	cmd.AddCommand(SyncNamespaces())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
