// Package naming provides name validation and derived resource names for
// PCE-managed cluster resources.
//
// Cluster names and Kubernetes namespaces share a hostname-like pattern:
// lowercase alphanumerics and hyphens, starting and ending with an
// alphanumeric. Derived names follow fixed conventions ({cluster}-profile,
// {cluster}-{namespace}-intra-ns, clusters/{cluster}) so every resource
// belonging to a cluster can be identified and cleaned up by name.
package naming

import (
	"fmt"
	"regexp"
)

var (
	clusterNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)
	namespacePattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)
	labelPattern       = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/-]*[a-zA-Z0-9]$`)
)

// IsValidClusterName reports whether name is a valid PCE container cluster name.
func IsValidClusterName(name string) bool {
	return clusterNamePattern.MatchString(name)
}

// IsValidNamespace reports whether name is a valid Kubernetes namespace name.
func IsValidNamespace(name string) bool {
	return namespacePattern.MatchString(name)
}

// IsValidLabelKey reports whether key is a valid PCE label key.
func IsValidLabelKey(key string) bool {
	return labelPattern.MatchString(key)
}

// IsValidLabelValue reports whether value is a valid PCE label value.
func IsValidLabelValue(value string) bool {
	return labelPattern.MatchString(value)
}

// PairingProfile returns the name of the ephemeral pairing profile created
// while generating a pairing key for the cluster.
func PairingProfile(cluster string) string {
	return fmt.Sprintf("%s-profile", cluster)
}

// IntraNamespaceRule returns the name of the allow-all-TCP rule scoped to a
// single namespace of the cluster.
func IntraNamespaceRule(cluster, namespace string) string {
	return fmt.Sprintf("%s-%s-intra-ns", cluster, namespace)
}

// ClusterSecretPath returns the Vault path, relative to the secret-store root,
// where the cluster's pairing credentials are kept.
func ClusterSecretPath(cluster string) string {
	return fmt.Sprintf("clusters/%s", cluster)
}
