// Package handlers implements the command workflows. Commands bind flags and
// delegate here; handlers load configuration, construct the collaborating
// clients through replaceable factory variables, and run the workflow.
package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kestrelops/pcectl/internal/config"
	"github.com/kestrelops/pcectl/internal/k8s"
	"github.com/kestrelops/pcectl/internal/orchestration"
	"github.com/kestrelops/pcectl/internal/pce"
	"github.com/kestrelops/pcectl/internal/vault"
)

// Orchestrator is the slice of the orchestration service the handlers use.
type Orchestrator interface {
	GetCluster(ctx context.Context, name string) (*pce.ContainerCluster, error)
	CreateCluster(ctx context.Context, name, description string, mode pce.EnforcementMode) (*pce.ContainerCluster, error)
	DeleteCluster(ctx context.Context, name string) (bool, error)
	ListClusters(ctx context.Context) ([]pce.ContainerCluster, error)
	CreateNamespaceProfile(ctx context.Context, clusterID, namespace string, labels []pce.LabelRef) (*pce.ContainerProfile, error)
	SyncNamespaceLabels(ctx context.Context, clusterID string, namespaces []string) error
}

// NodeClient is the slice of the Kubernetes client the handlers use.
type NodeClient interface {
	ListNamespaces(ctx context.Context) ([]string, error)
}

// Factory function variables - can be replaced in tests.
var (
	loadConfig = config.Load

	newLogger = func(verbose bool) *logrus.Logger {
		logger := logrus.New()
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
		return logger
	}

	newOrchestrator = func(cfg *config.Config, logger *logrus.Logger) (Orchestrator, error) {
		client := pce.NewHTTPClient(cfg.PCE, logger)
		store, err := vault.New(cfg.Vault, logger)
		if err != nil {
			return nil, err
		}
		return orchestration.New(client, store, logger), nil
	}

	newNodeClient = func(cfg config.KubernetesConfig, logger *logrus.Logger) (NodeClient, error) {
		return k8s.NewClient(cfg, logger)
	}
)
