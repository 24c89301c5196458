package handlers

import (
	"context"
	"fmt"
	"time"
)

// GetOptions carries the get-cluster flags.
type GetOptions struct {
	ConfigPath string
	Name       string
	Verbose    bool
}

// Get handles the get-cluster command. The cluster token is never printed,
// only its presence is shown.
func Get(ctx context.Context, opts GetOptions) error {
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
		fmt.Printf("Cluster %s not found\n", opts.Name)
		return nil
	}

	status := "Offline"
	if cluster.Online {
		status = "Active"
	}
	token := ""
	if cluster.ContainerClusterToken != "" {
		token = "***"
	}

	fmt.Printf("Name:        %s\n", cluster.Name)
	fmt.Printf("Status:      %s\n", status)
	fmt.Printf("Enforcement: %s\n", cluster.EnforcementMode)
	fmt.Printf("Created:     %s\n", formatTime(cluster.CreatedAt))
	fmt.Printf("Updated:     %s\n", formatTime(cluster.UpdatedAt))
	fmt.Printf("Token:       %s\n", token)
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
