package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kestrelops/pcectl/internal/config"
	"github.com/kestrelops/pcectl/internal/pce"
)

// mockOrchestrator is a scriptable Orchestrator for handler tests.
type mockOrchestrator struct {
	GetClusterFunc             func(ctx context.Context, name string) (*pce.ContainerCluster, error)
	CreateClusterFunc          func(ctx context.Context, name, description string, mode pce.EnforcementMode) (*pce.ContainerCluster, error)
	DeleteClusterFunc          func(ctx context.Context, name string) (bool, error)
	ListClustersFunc           func(ctx context.Context) ([]pce.ContainerCluster, error)
	CreateNamespaceProfileFunc func(ctx context.Context, clusterID, namespace string, labels []pce.LabelRef) (*pce.ContainerProfile, error)
	SyncNamespaceLabelsFunc    func(ctx context.Context, clusterID string, namespaces []string) error

	calls []string
}

func (m *mockOrchestrator) GetCluster(ctx context.Context, name string) (*pce.ContainerCluster, error) {
	m.calls = append(m.calls, "get")
	if m.GetClusterFunc != nil {
		return m.GetClusterFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockOrchestrator) CreateCluster(ctx context.Context, name, description string, mode pce.EnforcementMode) (*pce.ContainerCluster, error) {
	m.calls = append(m.calls, "create")
	if m.CreateClusterFunc != nil {
		return m.CreateClusterFunc(ctx, name, description, mode)
	}
	return &pce.ContainerCluster{Name: name, Href: "/orgs/1/container_clusters/cc-1"}, nil
}

func (m *mockOrchestrator) DeleteCluster(ctx context.Context, name string) (bool, error) {
	m.calls = append(m.calls, "delete")
	if m.DeleteClusterFunc != nil {
		return m.DeleteClusterFunc(ctx, name)
	}
	return true, nil
}

func (m *mockOrchestrator) ListClusters(ctx context.Context) ([]pce.ContainerCluster, error) {
	m.calls = append(m.calls, "list")
	if m.ListClustersFunc != nil {
		return m.ListClustersFunc(ctx)
	}
	return nil, nil
}

func (m *mockOrchestrator) CreateNamespaceProfile(ctx context.Context, clusterID, namespace string, labels []pce.LabelRef) (*pce.ContainerProfile, error) {
	m.calls = append(m.calls, "profile")
	if m.CreateNamespaceProfileFunc != nil {
		return m.CreateNamespaceProfileFunc(ctx, clusterID, namespace, labels)
	}
	return &pce.ContainerProfile{Namespace: namespace}, nil
}

func (m *mockOrchestrator) SyncNamespaceLabels(ctx context.Context, clusterID string, namespaces []string) error {
	m.calls = append(m.calls, "sync")
	if m.SyncNamespaceLabelsFunc != nil {
		return m.SyncNamespaceLabelsFunc(ctx, clusterID, namespaces)
	}
	return nil
}

// mockNodeClient is a scriptable NodeClient.
type mockNodeClient struct {
	ListNamespacesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockNodeClient) ListNamespaces(ctx context.Context) ([]string, error) {
	if m.ListNamespacesFunc != nil {
		return m.ListNamespacesFunc(ctx)
	}
	return nil, nil
}

// swapFactories installs test doubles for the factory variables and returns a
// restore function for defer.
func swapFactories(svc Orchestrator, node NodeClient) func() {
	origLoad := loadConfig
	origOrch := newOrchestrator
	origNode := newNodeClient

	loadConfig = func(_ string) (*config.Config, error) {
		return &config.Config{}, nil
	}
	newOrchestrator = func(_ *config.Config, _ *logrus.Logger) (Orchestrator, error) {
		return svc, nil
	}
	newNodeClient = func(_ config.KubernetesConfig, _ *logrus.Logger) (NodeClient, error) {
		return node, nil
	}

	return func() {
		loadConfig = origLoad
		newOrchestrator = origOrch
		newNodeClient = origNode
	}
}
