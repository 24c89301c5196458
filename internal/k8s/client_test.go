package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func namespaceObj(name string, labels map[string]string) *corev1.Namespace {
	return &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels},
	}
}

func TestEnsureServiceAccount_Idempotent(t *testing.T) {
	t.Parallel()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewWithClientset(fake.NewSimpleClientset(), logger)
	ctx := context.Background()

	require.NoError(t, c.EnsureServiceAccount(ctx, "illumio-system", "illumio-agent"))
	require.NoError(t, c.EnsureServiceAccount(ctx, "illumio-system", "illumio-agent"))

	sa, err := c.clientset.CoreV1().ServiceAccounts("illumio-system").
		Get(ctx, "illumio-agent", metav1.GetOptions{})
	require.NoError(t, err)
	require.Equal(t, "illumio-agent", sa.Name)
}

func TestEnsureConfigMap_DoesNotOverwrite(t *testing.T) {
	t.Parallel()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewWithClientset(fake.NewSimpleClientset(), logger)
	ctx := context.Background()

	require.NoError(t, c.EnsureConfigMap(ctx, "illumio-system", "illumio-config",
		map[string]string{"org_id": "1"}))
	require.NoError(t, c.EnsureConfigMap(ctx, "illumio-system", "illumio-config",
		map[string]string{"org_id": "2"}))

	cm, err := c.clientset.CoreV1().ConfigMaps("illumio-system").
		Get(ctx, "illumio-config", metav1.GetOptions{})
	require.NoError(t, err)
	require.Equal(t, "1", cm.Data["org_id"], "existing config map is left untouched")
}

func TestEnsureSecret(t *testing.T) {
	t.Parallel()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewWithClientset(fake.NewSimpleClientset(), logger)
	ctx := context.Background()

	require.NoError(t, c.EnsureSecret(ctx, "illumio-system", "illumio-pairing",
		map[string]string{"pairing_key": "activation-xyz"}))

	secret, err := c.clientset.CoreV1().Secrets("illumio-system").
		Get(ctx, "illumio-pairing", metav1.GetOptions{})
	require.NoError(t, err)
	require.Equal(t, corev1.SecretTypeOpaque, secret.Type)
	require.Equal(t, []byte("activation-xyz"), secret.Data["pairing_key"])
}

func TestNamespaceLifecycle(t *testing.T) {
	t.Parallel()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewWithClientset(fake.NewSimpleClientset(
		namespaceObj("default", nil),
		namespaceObj("payments", nil),
	), logger)
	ctx := context.Background()

	names, err := c.ListNamespaces(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"default", "payments"}, names)

	exists, err := c.NamespaceExists(ctx, "payments")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = c.NamespaceExists(ctx, "ghost")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, c.DeleteNamespace(ctx, "payments"))
	require.NoError(t, c.DeleteNamespace(ctx, "payments"), "second delete tolerated")

	exists, err = c.NamespaceExists(ctx, "payments")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestGetPodStatusAndReady(t *testing.T) {
	t.Parallel()
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "agent-0", Namespace: "illumio-system"},
		Status: corev1.PodStatus{
			Phase: corev1.PodRunning,
			ContainerStatuses: []corev1.ContainerStatus{
				{Name: "agent", Ready: true},
				{Name: "sidecar", Ready: false},
			},
		},
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewWithClientset(fake.NewSimpleClientset(pod), logger)

	status, err := c.GetPodStatus(context.Background(), "illumio-system", "agent-0")
	require.NoError(t, err)
	require.Equal(t, corev1.PodRunning, status.Phase)
	require.Len(t, status.Containers, 2)
	require.False(t, status.Ready(), "one container not ready")

	pod.Status.ContainerStatuses[1].Ready = true
	_, err = c.clientset.CoreV1().Pods("illumio-system").
		UpdateStatus(context.Background(), pod, metav1.UpdateOptions{})
	require.NoError(t, err)
	status, err = c.GetPodStatus(context.Background(), "illumio-system", "agent-0")
	require.NoError(t, err)
	require.True(t, status.Ready())
}

func TestWaitForPodReady(t *testing.T) {
	t.Parallel()
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "agent-0", Namespace: "illumio-system"},
		Status: corev1.PodStatus{
			Phase:             corev1.PodRunning,
			ContainerStatuses: []corev1.ContainerStatus{{Name: "agent", Ready: true}},
		},
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewWithClientset(fake.NewSimpleClientset(pod), logger)

	require.NoError(t, c.WaitForPodReady(context.Background(), "illumio-system", "agent-0", time.Second))
}

func TestWaitForPodReady_Timeout(t *testing.T) {
	t.Parallel()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewWithClientset(fake.NewSimpleClientset(), logger)

	err := c.WaitForPodReady(context.Background(), "illumio-system", "missing", 100*time.Millisecond)
	require.Error(t, err)
}

func TestApplyNamespaceLabels(t *testing.T) {
	t.Parallel()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewWithClientset(fake.NewSimpleClientset(
		namespaceObj("illumio-system", map[string]string{"team": "platform"}),
	), logger)
	ctx := context.Background()

	require.NoError(t, c.ApplyNamespaceLabels(ctx, "illumio-system", "aks-eus-dv01"))

	ns, err := c.clientset.CoreV1().Namespaces().Get(ctx, "illumio-system", metav1.GetOptions{})
	require.NoError(t, err)
	require.Equal(t, "Development", ns.Labels[LabelEnvironment])
	require.Equal(t, "Azure South Central US", ns.Labels[LabelLocation])
	require.Equal(t, "aks-eus-dv01", ns.Labels[LabelCluster])
	require.Equal(t, "platform", ns.Labels["team"], "unrelated labels preserved")
}

func TestApplyNamespaceLabels_MissingNamespace(t *testing.T) {
	t.Parallel()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewWithClientset(fake.NewSimpleClientset(), logger)

	err := c.ApplyNamespaceLabels(context.Background(), "ghost", "cluster-x")
	require.Error(t, err)
}

func TestEnvironmentLabel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		want string
	}{
		{"aks-eus-dv01", "Development"},
		{"aks-eus-te01", "Clone"},
		{"aks-eus-st01", "Clone"},
		{"aks-eus-pr01", "Production"},
		{"aks-eus-xx01", "Development"},
		{"short", "Development"},
		{"", "Development"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, EnvironmentLabel(tc.name), "cluster %q", tc.name)
	}
}

func TestLocationLabel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		want string
	}{
		{"aks-eus-dv01", "Azure South Central US"},
		{"aks-eun-dv01", "Azure North Central US"},
		{"aks-eug-dv01", "Azure Greenfield"},
		{"aks-eux-dv01", "Azure Central US"},
		{"short", "Azure Central US"},
		{"", "Azure Central US"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, LocationLabel(tc.name), "cluster %q", tc.name)
	}
}
