package handlers

import (
	"context"
	"fmt"

	"github.com/kestrelops/pcectl/internal/pce"
)

// CreateOptions carries the create-cluster flags.
type CreateOptions struct {
	ConfigPath  string
	Name        string
	Namespace   string
	Description string
	Enforce     bool
	DryRun      bool
	Verbose     bool
}

// Create handles the create-cluster command.
//
// An already existing cluster is reported and skipped without error. In
// dry-run mode the workflow stops after the existence check, before any
// mutation.
func Create(ctx context.Context, opts CreateOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := newLogger(opts.Verbose)

	svc, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	existing, err := svc.GetCluster(ctx, opts.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Printf("Cluster %s already exists\n", opts.Name)
		return nil
	}

	if opts.DryRun {
		fmt.Printf("Dry run: would create cluster %s with namespace profile %s\n",
			opts.Name, opts.Namespace)
		return nil
	}

	mode := pce.EnforcementVisibilityOnly
	if opts.Enforce {
		mode = pce.EnforcementFull
	}

	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("Managed cluster: %s", opts.Name)
	}

	cluster, err := svc.CreateCluster(ctx, opts.Name, description, mode)
	if err != nil {
		return err
	}

	if _, err := svc.CreateNamespaceProfile(ctx, cluster.ID(), opts.Namespace, nil); err != nil {
		return err
	}

	fmt.Printf("Cluster %s created\n", opts.Name)
	return nil
}
