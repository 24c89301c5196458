package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCluster(t *testing.T) {
	cmd := CreateCluster()

	require.NotNil(t, cmd)
	assert.Equal(t, "create-cluster <name>", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.Contains(t, cmd.Long, "pairing key")
}

func TestCreateCluster_Flags(t *testing.T) {
	cmd := CreateCluster()

	namespace := cmd.Flags().Lookup("namespace")
	require.NotNil(t, namespace)
	assert.Equal(t, "illumio-system", namespace.DefValue)

	enforce := cmd.Flags().Lookup("enforce")
	require.NotNil(t, enforce)
	assert.Equal(t, "false", enforce.DefValue)

	require.NotNil(t, cmd.Flags().Lookup("description"))
}

func TestCreateCluster_RequiresName(t *testing.T) {
	cmd := CreateCluster()
	err := cmd.Args(cmd, []string{})
	require.Error(t, err)

	err = cmd.Args(cmd, []string{"prod-east"})
	require.NoError(t, err)
}

func TestDeleteCluster(t *testing.T) {
	cmd := DeleteCluster()

	require.NotNil(t, cmd)
	assert.Equal(t, "delete-cluster <name>", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestGetCluster(t *testing.T) {
	cmd := GetCluster()

	require.NotNil(t, cmd)
	assert.Equal(t, "get-cluster <name>", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestListClusters(t *testing.T) {
	cmd := ListClusters()

	require.NotNil(t, cmd)
	assert.Equal(t, "list-clusters", cmd.Use)
	require.NoError(t, cmd.Args(cmd, []string{}))
	require.Error(t, cmd.Args(cmd, []string{"extra"}))
}

func TestSyncNamespaces(t *testing.T) {
	cmd := SyncNamespaces()

	require.NotNil(t, cmd)
	assert.Equal(t, "sync-namespaces <name>", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.Contains(t, cmd.Long, "never removed")
}
