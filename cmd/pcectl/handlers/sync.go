package handlers

import (
	"context"
	"fmt"
)

// SyncOptions carries the sync-namespaces flags.
type SyncOptions struct {
	ConfigPath string
	Name       string
	DryRun     bool
	Verbose    bool
}

// Sync handles the sync-namespaces command. It lists the live namespaces of
// the local cluster and creates a workload profile for every namespace that
// has none. The sync is additive; profiles for vanished namespaces stay.
func Sync(ctx context.Context, opts SyncOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := newLogger(opts.Verbose)

	svc, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	cluster, err := svc.GetCluster(ctx, opts.Name)
	if err != nil {
		return err
	}
	if cluster == nil {
		return fmt.Errorf("cluster not found: %s", opts.Name)
	}

	node, err := newNodeClient(cfg.Kubernetes, logger)
	if err != nil {
		return err
	}

	namespaces, err := node.ListNamespaces(ctx)
	if err != nil {
		return err
	}

	if opts.DryRun {
		fmt.Printf("Dry run: would sync %d namespaces into cluster %s\n",
			len(namespaces), opts.Name)
		return nil
	}

	if err := svc.SyncNamespaceLabels(ctx, cluster.ID(), namespaces); err != nil {
		return err
	}

	fmt.Printf("Synced %d namespaces into cluster %s\n", len(namespaces), opts.Name)
	return nil
}
