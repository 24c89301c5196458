// Package orchestration sequences the multi-step workflows that stand up and
// tear down PCE container clusters.
//
// Each workflow is a linear run of idempotent existence checks, creates, and
// dependent secret writes across the PCE client and the secret store. The
// service holds no durable state of its own; cluster existence is always
// decided by re-querying the PCE by exact name. Two invocations racing on the
// same name can therefore both observe "absent" and both create; the backing
// API's own uniqueness rules decide the outcome.
package orchestration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kestrelops/pcectl/internal/config"
	"github.com/kestrelops/pcectl/internal/pce"
	"github.com/kestrelops/pcectl/internal/util/naming"
	"github.com/kestrelops/pcectl/internal/vault"
)

// Service drives the cluster, label, profile, and rule workflows. It is the
// only caller of the PCE client and the secret store for business logic.
type Service struct {
	pce     pce.Client
	secrets vault.Store
	logger  *logrus.Logger
}

// New creates a Service.
func New(client pce.Client, secrets vault.Store, logger *logrus.Logger) *Service {
	return &Service{
		pce:     client,
		secrets: secrets,
		logger:  logger,
	}
}

// ClusterConfig is the secret record derived from a freshly created cluster.
// It is what a workload needs to pair itself into the cluster.
type ClusterConfig struct {
	ClusterID    string
	ClusterName  string
	ClusterToken string
	PairingKey   string
	Namespace    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c ClusterConfig) toSecretData() map[string]interface{} {
	return map[string]interface{}{
		"cluster_id":    c.ClusterID,
		"cluster_name":  c.ClusterName,
		"cluster_token": c.ClusterToken,
		"pairing_key":   c.PairingKey,
		"namespace":     c.Namespace,
		"created_at":    c.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":    c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// GetCluster returns the cluster with the exact given name, or nil when no
// such cluster exists. The PCE name filter is advisory and may return
// over-broad matches, so the result set is scanned for an exact match.
func (s *Service) GetCluster(ctx context.Context, name string) (*pce.ContainerCluster, error) {
	raw, err := s.pce.Request(ctx, http.MethodGet, pce.EndpointContainerClusters,
		url.Values{"name": {name}}, nil)
	if err != nil {
		return nil, &OperationError{Op: fmt.Sprintf("get cluster %s", name), Err: err}
	}

	var clusters []pce.ContainerCluster
	if err := json.Unmarshal(raw, &clusters); err != nil {
		return nil, &OperationError{Op: fmt.Sprintf("get cluster %s", name), Err: err}
	}

	for i := range clusters {
		if clusters[i].Name == name {
			return &clusters[i], nil
		}
	}
	return nil, nil
}

// ListClusters returns every container cluster of the organization.
func (s *Service) ListClusters(ctx context.Context) ([]pce.ContainerCluster, error) {
	raw, err := s.pce.Request(ctx, http.MethodGet, pce.EndpointContainerClusters, nil, nil)
	if err != nil {
		return nil, &OperationError{Op: "list clusters", Err: err}
	}

	var clusters []pce.ContainerCluster
	if err := json.Unmarshal(raw, &clusters); err != nil {
		return nil, &OperationError{Op: "list clusters", Err: err}
	}
	return clusters, nil
}

// CreateCluster creates a new container cluster and stores its pairing
// credentials in the secret store. The name is validated before any network
// call. Any failure along the way, including the secret write after the PCE
// create succeeded, surfaces as a single ClusterOperationError.
func (s *Service) CreateCluster(ctx context.Context, name, description string, mode pce.EnforcementMode) (*pce.ContainerCluster, error) {
	cluster, err := s.createCluster(ctx, name, description, mode)
	if err != nil {
		return nil, &ClusterOperationError{Op: "create", Cluster: name, Err: err}
	}
	return cluster, nil
}

func (s *Service) createCluster(ctx context.Context, name, description string, mode pce.EnforcementMode) (*pce.ContainerCluster, error) {
	if !naming.IsValidClusterName(name) {
		return nil, &ValidationError{Field: "cluster name", Value: name}
	}

	payload := map[string]interface{}{
		"name":             name,
		"enforcement_mode": mode,
	}
	if description != "" {
		payload["description"] = description
	}

	raw, err := s.pce.Request(ctx, http.MethodPost, pce.EndpointContainerClusters, nil, payload)
	if err != nil {
		return nil, err
	}

	var cluster pce.ContainerCluster
	if err := json.Unmarshal(raw, &cluster); err != nil {
		return nil, err
	}

	if err := s.storeClusterConfig(ctx, &cluster); err != nil {
		return nil, err
	}

	s.logger.WithField("cluster", name).Info("cluster created")
	return &cluster, nil
}

// storeClusterConfig derives the pairing credentials for a new cluster and
// upserts them at clusters/{name}. The write is last-writer-wins; no
// check-and-set is requested even though the store supports it.
func (s *Service) storeClusterConfig(ctx context.Context, cluster *pce.ContainerCluster) error {
	pairingKey, err := s.generatePairingKey(ctx, cluster.Name)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	cfg := ClusterConfig{
		ClusterID:    cluster.ID(),
		ClusterName:  cluster.Name,
		ClusterToken: cluster.ContainerClusterToken,
		PairingKey:   pairingKey,
		Namespace:    config.DefaultNamespace,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.secrets.Store(ctx, naming.ClusterSecretPath(cluster.Name), cfg.toSecretData(), nil)
	return err
}

// generatePairingKey creates an ephemeral pairing profile for the cluster and
// requests a single pairing key from it, returning the activation code.
func (s *Service) generatePairingKey(ctx context.Context, clusterName string) (string, error) {
	profilePayload := pce.PairingProfile{
		Name:                naming.PairingProfile(clusterName),
		Enabled:             true,
		EnforcementMode:     pce.EnforcementVisibilityOnly,
		VisibilityLevel:     pce.VisibilityFlowSummary,
		LogTraffic:          false,
		LogTrafficLock:      true,
		EnforcementModeLock: true,
	}

	raw, err := s.pce.Request(ctx, http.MethodPost, pce.EndpointPairingProfiles, nil, profilePayload)
	if err != nil {
		return "", err
	}

	var profile pce.PairingProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return "", err
	}

	keyEndpoint := fmt.Sprintf("%s/%s/pairing_key", pce.EndpointPairingProfiles, profile.ID())
	raw, err = s.pce.Request(ctx, http.MethodPost, keyEndpoint, nil, nil)
	if err != nil {
		return "", err
	}

	var key pce.PairingKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return "", err
	}

	return key.ActivationCode, nil
}

// DeleteCluster deletes the named cluster and best-effort removes its secret.
// A missing cluster returns (false, nil) without error. The PCE delete and
// the secret delete are not transactional: a secret-store failure after a
// committed PCE delete still surfaces as an error.
func (s *Service) DeleteCluster(ctx context.Context, name string) (bool, error) {
	cluster, err := s.GetCluster(ctx, name)
	if err != nil {
		return false, &ClusterOperationError{Op: "delete", Cluster: name, Err: err}
	}
	if cluster == nil {
		return false, nil
	}

	endpoint := fmt.Sprintf("%s/%s", pce.EndpointContainerClusters, cluster.ID())
	if _, err := s.pce.Request(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return false, &ClusterOperationError{Op: "delete", Cluster: name, Err: err}
	}

	if _, err := s.secrets.DeleteAllVersions(ctx, naming.ClusterSecretPath(name)); err != nil {
		return false, &ClusterOperationError{Op: "delete", Cluster: name, Err: err}
	}

	s.logger.WithField("cluster", name).Info("cluster deleted")
	return true, nil
}

// GetOrCreateLabel returns the first label matching key and value, creating
// it when none exists. Concurrent callers can both observe "absent" and both
// create; the PCE's own uniqueness constraints decide what happens then.
func (s *Service) GetOrCreateLabel(ctx context.Context, key, value string) (*pce.Label, error) {
	label, err := s.getOrCreateLabel(ctx, key, value)
	if err != nil {
		return nil, &LabelOperationError{Key: key, Value: value, Err: err}
	}
	return label, nil
}

func (s *Service) getOrCreateLabel(ctx context.Context, key, value string) (*pce.Label, error) {
	raw, err := s.pce.Request(ctx, http.MethodGet, pce.EndpointLabels,
		url.Values{"key": {key}, "value": {value}}, nil)
	if err != nil {
		return nil, err
	}

	var labels []pce.Label
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, err
	}
	if len(labels) > 0 {
		return &labels[0], nil
	}

	raw, err = s.pce.Request(ctx, http.MethodPost, pce.EndpointLabels, nil,
		map[string]string{"key": key, "value": value})
	if err != nil {
		return nil, err
	}

	var label pce.Label
	if err := json.Unmarshal(raw, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// CreateNamespaceProfile creates a workload profile for the namespace under
// the given cluster. The namespace is validated before any network call. New
// profiles are managed and visibility-only.
func (s *Service) CreateNamespaceProfile(ctx context.Context, clusterID, namespace string, labels []pce.LabelRef) (*pce.ContainerProfile, error) {
	profile, err := s.createNamespaceProfile(ctx, clusterID, namespace, labels)
	if err != nil {
		return nil, &OperationError{Op: fmt.Sprintf("create profile for namespace %s", namespace), Err: err}
	}
	return profile, nil
}

func (s *Service) createNamespaceProfile(ctx context.Context, clusterID, namespace string, labels []pce.LabelRef) (*pce.ContainerProfile, error) {
	if !naming.IsValidNamespace(namespace) {
		return nil, &ValidationError{Field: "namespace", Value: namespace}
	}

	payload := map[string]interface{}{
		"namespace":        namespace,
		"managed":          true,
		"enforcement_mode": pce.EnforcementVisibilityOnly,
	}
	if len(labels) > 0 {
		payload["assign_labels"] = labels
	}

	endpoint := fmt.Sprintf("%s/%s/%s", pce.EndpointContainerClusters, clusterID, pce.EndpointWorkloadProfiles)
	raw, err := s.pce.Request(ctx, http.MethodPost, endpoint, nil, payload)
	if err != nil {
		return nil, err
	}

	var profile pce.ContainerProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateIntraNamespaceRule creates a rule allowing all TCP traffic between
// workloads of the same namespace: the namespace label is both the sole
// consumer and the sole provider, and the single ingress service is TCP on
// any port.
func (s *Service) CreateIntraNamespaceRule(ctx context.Context, namespace, clusterName string) (*pce.Rule, error) {
	rule, err := s.createIntraNamespaceRule(ctx, namespace, clusterName)
	if err != nil {
		return nil, &OperationError{Op: "create intra-namespace rule", Err: err}
	}
	return rule, nil
}

func (s *Service) createIntraNamespaceRule(ctx context.Context, namespace, clusterName string) (*pce.Rule, error) {
	label, err := s.GetOrCreateLabel(ctx, "namespace", namespace)
	if err != nil {
		return nil, err
	}

	ref := &pce.LabelRef{Href: label.Href}
	rule := pce.Rule{
		Name:            naming.IntraNamespaceRule(clusterName, namespace),
		Enabled:         true,
		IngressServices: []pce.IngressService{{Proto: pce.ProtoTCP}},
		Consumers:       []pce.RuleActor{{Label: ref}},
		Providers:       []pce.RuleActor{{Label: ref}},
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.pce.Request(ctx, http.MethodPost, pce.EndpointSecPolicy, nil, rule)
	if err != nil {
		return nil, err
	}

	var created pce.Rule
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetClusterProfiles returns every workload profile of the cluster.
func (s *Service) GetClusterProfiles(ctx context.Context, clusterID string) ([]pce.ContainerProfile, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", pce.EndpointContainerClusters, clusterID, pce.EndpointWorkloadProfiles)
	raw, err := s.pce.Request(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, &OperationError{Op: "get cluster profiles", Err: err}
	}

	var profiles []pce.ContainerProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, &OperationError{Op: "get cluster profiles", Err: err}
	}
	return profiles, nil
}

// SyncNamespaceLabels creates a workload profile for every namespace in the
// input set that has none yet. Profiles are never removed for namespaces no
// longer present; the sync is additive only.
func (s *Service) SyncNamespaceLabels(ctx context.Context, clusterID string, namespaces []string) error {
	profiles, err := s.GetClusterProfiles(ctx, clusterID)
	if err != nil {
		return &OperationError{Op: "sync namespace labels", Err: err}
	}

	existing := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		if p.Namespace != "" {
			existing[p.Namespace] = true
		}
	}

	seen := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		if existing[ns] || seen[ns] {
			continue
		}
		seen[ns] = true

		if _, err := s.CreateNamespaceProfile(ctx, clusterID, ns, nil); err != nil {
			return &OperationError{Op: "sync namespace labels", Err: err}
		}
		s.logger.WithFields(logrus.Fields{
			"cluster":   clusterID,
			"namespace": ns,
		}).Info("created workload profile")
	}

	return nil
}

// UpdateClusterLabels replaces the label set of an existing cluster. A
// missing cluster is an error, unlike DeleteCluster.
func (s *Service) UpdateClusterLabels(ctx context.Context, name string, labels []pce.LabelRef) (*pce.ContainerCluster, error) {
	cluster, err := s.updateClusterLabels(ctx, name, labels)
	if err != nil {
		return nil, &ClusterOperationError{Op: "update labels for", Cluster: name, Err: err}
	}
	return cluster, nil
}

func (s *Service) updateClusterLabels(ctx context.Context, name string, labels []pce.LabelRef) (*pce.ContainerCluster, error) {
	cluster, err := s.GetCluster(ctx, name)
	if err != nil {
		return nil, err
	}
	if cluster == nil {
		return nil, fmt.Errorf("cluster not found: %s", name)
	}

	endpoint := fmt.Sprintf("%s/%s", pce.EndpointContainerClusters, cluster.ID())
	raw, err := s.pce.Request(ctx, http.MethodPut, endpoint, nil,
		map[string]interface{}{"labels": labels})
	if err != nil {
		return nil, err
	}

	var updated pce.ContainerCluster
	if err := json.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
