package commands

import (
	"github.com/spf13/cobra"

	"github.com/kestrelops/pcectl/cmd/pcectl/handlers"
	"github.com/kestrelops/pcectl/internal/config"
)

// CreateCluster returns the create-cluster command.
//
// The command registers a new container cluster with the PCE, stores its
// pairing credentials in Vault, and creates the workload profile for the
// companion namespace. An already existing cluster is reported and skipped.
func CreateCluster() *cobra.Command {
	var (
		namespace   string
		description string
		enforce     bool
	)

	cmd := &cobra.Command{
		Use:   "create-cluster <name>",
		Short: "Create and configure a new container cluster",
		Long: `Create registers a container cluster with the PCE and prepares it for use.

The workflow:
  - checks whether the cluster already exists (then stops without error)
  - creates the container cluster
  - generates a pairing key and stores the credentials in Vault
  - creates a managed workload profile for the companion namespace

Example:
  pcectl create-cluster prod-east --namespace illumio-system --enforce`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Create(cmd.Context(), handlers.CreateOptions{
				ConfigPath:  global.ConfigPath,
				Name:        args[0],
				Namespace:   namespace,
				Description: description,
				Enforce:     enforce,
				DryRun:      global.DryRun,
				Verbose:     global.Verbose,
			})
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", config.DefaultNamespace, "Kubernetes namespace")
	cmd.Flags().StringVar(&description, "description", "", "Cluster description")
	cmd.Flags().BoolVar(&enforce, "enforce", false, "Enable full enforcement mode")

	return cmd
}
