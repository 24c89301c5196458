// Package k8s wraps the Kubernetes API operations the cluster workflows need:
// provisioning the companion namespace objects and inspecting agent pods.
package k8s

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/kestrelops/pcectl/internal/config"
)

const (
	// DefaultReadyTimeout bounds WaitForPodReady when the caller passes zero.
	DefaultReadyTimeout = 300 * time.Second

	readyPollInterval = 5 * time.Second
)

// Client wraps a Kubernetes clientset for namespace and pod operations.
type Client struct {
	clientset kubernetes.Interface
	logger    *logrus.Logger
}

// NewClient creates a client from a kubeconfig path, or from the in-cluster
// service account when the config selects in-cluster mode.
func NewClient(cfg config.KubernetesConfig, logger *logrus.Logger) (*Client, error) {
	var (
		restCfg *rest.Config
		err     error
	)
	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.Kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load kubernetes config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return NewWithClientset(clientset, logger), nil
}

// NewWithClientset wraps an existing clientset.
func NewWithClientset(clientset kubernetes.Interface, logger *logrus.Logger) *Client {
	return &Client{clientset: clientset, logger: logger}
}

// EnsureServiceAccount creates the service account if it does not exist.
func (c *Client) EnsureServiceAccount(ctx context.Context, namespace, name string) error {
	sa := &corev1.ServiceAccount{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}

	_, err := c.clientset.CoreV1().ServiceAccounts(namespace).Create(ctx, sa, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		c.logger.WithField("service_account", name).Debug("service account already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create service account %s/%s: %w", namespace, name, err)
	}

	c.logger.WithField("service_account", name).Info("created service account")
	return nil
}

// EnsureConfigMap creates the config map if it does not exist. An existing
// config map is left as is, not overwritten.
func (c *Client) EnsureConfigMap(ctx context.Context, namespace, name string, data map[string]string) error {
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Data: data,
	}

	_, err := c.clientset.CoreV1().ConfigMaps(namespace).Create(ctx, cm, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		c.logger.WithField("config_map", name).Debug("config map already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create config map %s/%s: %w", namespace, name, err)
	}

	c.logger.WithField("config_map", name).Info("created config map")
	return nil
}

// EnsureSecret creates an opaque secret if it does not exist.
func (c *Client) EnsureSecret(ctx context.Context, namespace, name string, data map[string]string) error {
	encoded := make(map[string][]byte, len(data))
	for k, v := range data {
		encoded[k] = []byte(v)
	}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Type: corev1.SecretTypeOpaque,
		Data: encoded,
	}

	_, err := c.clientset.CoreV1().Secrets(namespace).Create(ctx, secret, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		c.logger.WithField("secret", name).Debug("secret already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create secret %s/%s: %w", namespace, name, err)
	}

	c.logger.WithField("secret", name).Info("created secret")
	return nil
}

// ListNamespaces returns the names of all namespaces.
func (c *Client) ListNamespaces(ctx context.Context) ([]string, error) {
	list, err := c.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	return names, nil
}

// NamespaceExists reports whether the namespace exists.
func (c *Client) NamespaceExists(ctx context.Context, name string) (bool, error) {
	_, err := c.clientset.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check namespace %s: %w", name, err)
	}
	return true, nil
}

// DeleteNamespace deletes the namespace. A missing namespace is not an error.
func (c *Client) DeleteNamespace(ctx context.Context, name string) error {
	err := c.clientset.CoreV1().Namespaces().Delete(ctx, name, metav1.DeleteOptions{})
	if apierrors.IsNotFound(err) {
		c.logger.WithField("namespace", name).Debug("namespace not found")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete namespace %s: %w", name, err)
	}

	c.logger.WithField("namespace", name).Info("deleted namespace")
	return nil
}

// ContainerStatus summarizes one container of a pod.
type ContainerStatus struct {
	Name  string
	Ready bool
}

// PodStatus summarizes a pod's phase and container readiness.
type PodStatus struct {
	Phase      corev1.PodPhase
	Containers []ContainerStatus
}

// Ready reports whether the pod is running with every container ready.
func (s PodStatus) Ready() bool {
	if s.Phase != corev1.PodRunning {
		return false
	}
	for _, c := range s.Containers {
		if !c.Ready {
			return false
		}
	}
	return true
}

// GetPodStatus returns the status summary for a pod.
func (c *Client) GetPodStatus(ctx context.Context, namespace, name string) (PodStatus, error) {
	pod, err := c.clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return PodStatus{}, fmt.Errorf("failed to get pod status %s/%s: %w", namespace, name, err)
	}

	status := PodStatus{Phase: pod.Status.Phase}
	for _, cs := range pod.Status.ContainerStatuses {
		status.Containers = append(status.Containers, ContainerStatus{
			Name:  cs.Name,
			Ready: cs.Ready,
		})
	}
	return status, nil
}

// PodLogs returns the logs of a pod. Container selects a container in
// multi-container pods; tailLines limits output when positive.
func (c *Client) PodLogs(ctx context.Context, namespace, name, container string, tailLines int64) (string, error) {
	opts := &corev1.PodLogOptions{Container: container}
	if tailLines > 0 {
		opts.TailLines = &tailLines
	}

	stream, err := c.clientset.CoreV1().Pods(namespace).GetLogs(name, opts).Stream(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get pod logs %s/%s: %w", namespace, name, err)
	}
	defer stream.Close()

	raw, err := io.ReadAll(stream)
	if err != nil {
		return "", fmt.Errorf("failed to read pod logs %s/%s: %w", namespace, name, err)
	}
	return string(raw), nil
}

// WaitForPodReady polls until the pod is running with all containers ready,
// or the timeout elapses. Status errors during the wait are logged, not
// returned; the pod may simply not exist yet.
func (c *Client) WaitForPodReady(ctx context.Context, namespace, name string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}

	return wait.PollUntilContextTimeout(ctx, readyPollInterval, timeout, true,
		func(ctx context.Context) (bool, error) {
			status, err := c.GetPodStatus(ctx, namespace, name)
			if err != nil {
				c.logger.WithError(err).Warn("pod status check failed")
				return false, nil
			}
			return status.Ready(), nil
		})
}
