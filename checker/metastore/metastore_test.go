package metastore

import (
	"context"
	"testing"

	"github.com/driftdb/preflight/checker"
	"github.com/driftdb/preflight/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackendAlwaysPasses(t *testing.T) {
	v := NewVerifier(config.StoreConfig{Backend: BackendMemory})
	result := v.Verify(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, "Memory store requires no external dependencies", result.Message)
	require.Len(t, result.Details, 1)
	assert.Equal(t, "Memory Store", result.Details[0].Item)
	assert.Equal(t, checker.StatusPass, result.Details[0].Status)
}

func TestUnknownBackendFails(t *testing.T) {
	v := NewVerifier(config.StoreConfig{Backend: "zookeeper"})
	result := v.Verify(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "zookeeper")
	require.Len(t, result.Details, 1)
	assert.Equal(t, "Store Backend", result.Details[0].Item)
	assert.Equal(t, checker.StatusFail, result.Details[0].Status)
	assert.Contains(t, result.Details[0].Suggestion, "etcd, postgres, mysql, memory")
}
