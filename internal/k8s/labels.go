package k8s

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Namespace label keys applied by ApplyNamespaceLabels.
const (
	LabelEnvironment = "environment"
	LabelLocation    = "location"
	LabelCluster     = "cluster"
)

// ApplyNamespaceLabels labels the namespace with the environment, location,
// and cluster derived from the cluster name. Existing values for these keys
// are overwritten; other labels are untouched.
func (c *Client) ApplyNamespaceLabels(ctx context.Context, namespace, clusterName string) error {
	ns, err := c.clientset.CoreV1().Namespaces().Get(ctx, namespace, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("failed to label namespace %s: %w", namespace, err)
	}

	if ns.Labels == nil {
		ns.Labels = map[string]string{}
	}
	ns.Labels[LabelEnvironment] = EnvironmentLabel(clusterName)
	ns.Labels[LabelLocation] = LocationLabel(clusterName)
	ns.Labels[LabelCluster] = clusterName

	if _, err := c.clientset.CoreV1().Namespaces().Update(ctx, ns, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to label namespace %s: %w", namespace, err)
	}

	c.logger.WithField("namespace", namespace).Info("applied namespace labels")
	return nil
}

// EnvironmentLabel maps a cluster name to its environment. The environment
// code lives at a fixed position in the site naming convention; names too
// short to carry one fall back to Development.
func EnvironmentLabel(clusterName string) string {
	switch substr(clusterName, 8, 10) {
	case "dv":
		return "Development"
	case "te", "st":
		return "Clone"
	case "pr":
		return "Production"
	default:
		return "Development"
	}
}

// LocationLabel maps a cluster name to its data-center location, again by
// fixed position in the naming convention.
func LocationLabel(clusterName string) string {
	switch substr(clusterName, 6, 7) {
	case "s":
		return "Azure South Central US"
	case "n":
		return "Azure North Central US"
	case "g":
		return "Azure Greenfield"
	default:
		return "Azure Central US"
	}
}

// substr slices [start, end) clamped to the string length.
func substr(s string, start, end int) string {
	if start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
