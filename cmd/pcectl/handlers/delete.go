package handlers

import (
	"context"
	"fmt"
)

// DeleteOptions carries the delete-cluster flags.
type DeleteOptions struct {
	ConfigPath string
	Name       string
	DryRun     bool
	Verbose    bool
}

// Delete handles the delete-cluster command. A missing cluster is reported,
// not an error.
func Delete(ctx context.Context, opts DeleteOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := newLogger(opts.Verbose)

	svc, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	if opts.DryRun {
		fmt.Printf("Dry run: would delete cluster %s\n", opts.Name)
		return nil
	}

	deleted, err := svc.DeleteCluster(ctx, opts.Name)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("Cluster %s not found\n", opts.Name)
		return nil
	}

	fmt.Printf("Cluster %s deleted\n", opts.Name)
	return nil
}
