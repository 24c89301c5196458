package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/kestrelops/pcectl/internal/pce"
)

// ListOptions carries the list-clusters flags.
type ListOptions struct {
	ConfigPath string
	Verbose    bool
}

// List handles the list-clusters command.
func List(ctx context.Context, opts ListOptions) error {
	return list(ctx, opts, os.Stdout)
}

func list(ctx context.Context, opts ListOptions, dest io.Writer) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := newLogger(opts.Verbose)

	svc, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	clusters, err := svc.ListClusters(ctx)
	if err != nil {
		return err
	}
	if len(clusters) == 0 {
		fmt.Fprintln(dest, "No clusters found")
		return nil
	}

	table := tablewriter.NewWriter(dest)
	table.SetHeader([]string{"Name", "Status", "Enforcement", "Created"})
	table.SetAutoWrapText(false)

	for _, cluster := range clusters {
		table.Append(clusterRow(cluster))
	}

	table.Render()
	return nil
}

func clusterRow(cluster pce.ContainerCluster) []string {
	status := "Offline"
	if cluster.Online {
		status = "Active"
	}
	created := ""
	if cluster.CreatedAt != nil {
		created = cluster.CreatedAt.Format(time.DateTime)
	}
	return []string{cluster.Name, status, string(cluster.EnforcementMode), created}
}
