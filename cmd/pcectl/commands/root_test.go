package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "pcectl", cmd.Use)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "create-cluster")
	assert.Contains(t, names, "delete-cluster")
	assert.Contains(t, names, "get-cluster")
	assert.Contains(t, names, "list-clusters")
	assert.Contains(t, names, "sync-namespaces")
	assert.Contains(t, names, "version")
	assert.Contains(t, names, "completion")
}

func TestRoot_PersistentFlags(t *testing.T) {
	cmd := Root()

	for _, name := range []string{"verbose", "dry-run", "config"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "persistent flag %s should exist", name)
	}
}
