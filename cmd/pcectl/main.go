// Package main is the entry point for the pcectl CLI.
//
// pcectl manages Illumio container clusters: it registers Kubernetes clusters
// with the PCE, stores their pairing credentials in Vault, and keeps workload
// profiles in step with the live namespaces.
//
// Commands: create-cluster, delete-cluster, get-cluster, list-clusters,
// sync-namespaces.
//
// For detailed usage information, run:
//
//	pcectl --help
package main

import (
	"fmt"
	"os"

	"github.com/kestrelops/pcectl/cmd/pcectl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
