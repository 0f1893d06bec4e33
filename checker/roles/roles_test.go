package roles

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/driftdb/preflight/checker"
	"github.com/driftdb/preflight/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectedDialer(t *testing.T) func(network, address string, timeout time.Duration) (net.Conn, error) {
	return func(network, address string, timeout time.Duration) (net.Conn, error) {
		c1, c2 := net.Pipe()
		t.Cleanup(func() { c2.Close() })
		return c1, nil
	}
}

func TestCoordinatorCheckWithValidServerConfig(t *testing.T) {
	c := NewCoordinatorChecker(&config.CoordinatorConfig{
		MetaserviceAddrs: []string{"meta-0:3002"},
		Server: &config.ServerConfig{
			Addr:     "0.0.0.0:4000",
			HTTPAddr: "0.0.0.0:4001",
			GRPCAddr: "0.0.0.0:4002",
		},
	})
	c.dial = connectedDialer(t)

	result := c.Check(context.Background())

	assert.Equal(t, "Coordinator", c.ComponentName())
	assert.True(t, result.Success)
	require.Len(t, result.Details, 4)
	for _, d := range result.Details {
		assert.Equal(t, checker.StatusPass, d.Status, "detail %q", d.Item)
	}
}

func TestCoordinatorCheckInvalidServerAddress(t *testing.T) {
	c := NewCoordinatorChecker(&config.CoordinatorConfig{
		MetaserviceAddrs: []string{"meta-0:3002"},
		Server:           &config.ServerConfig{HTTPAddr: "no-port-here"},
	})
	c.dial = connectedDialer(t)

	result := c.Check(context.Background())

	assert.False(t, result.Success)
	var found bool
	for _, d := range result.Details {
		if d.Item == "HTTP Address Configuration" {
			found = true
			assert.Equal(t, checker.StatusFail, d.Status)
			assert.Contains(t, d.Message, "no-port-here")
		}
	}
	assert.True(t, found)
}

func TestCoordinatorCheckMissingServerConfigWarns(t *testing.T) {
	c := NewCoordinatorChecker(&config.CoordinatorConfig{
		MetaserviceAddrs: []string{"meta-0:3002"},
	})
	c.dial = connectedDialer(t)

	result := c.Check(context.Background())

	assert.True(t, result.Success, "missing server section is a warning only")
	var found bool
	for _, d := range result.Details {
		if d.Item == "Server Configuration" {
			found = true
			assert.Equal(t, checker.StatusWarning, d.Status)
		}
	}
	assert.True(t, found)
}

func TestDatanodeCheckFileStorage(t *testing.T) {
	root := t.TempDir()
	c := NewDatanodeChecker(&config.DatanodeConfig{
		MetaserviceAddrs: []string{"meta-0:3002"},
		Storage:          config.StorageConfig{Provider: "file", Root: root},
	}, false)
	c.dial = connectedDialer(t)

	result := c.Check(context.Background())

	assert.Equal(t, "Datanode", c.ComponentName())
	assert.True(t, result.Success)

	items := make([]string, 0, len(result.Details))
	for _, d := range result.Details {
		items = append(items, d.Item)
	}
	assert.Contains(t, items, "Metaservice Connectivity 1")
	assert.Contains(t, items, "File Storage Directory")
	assert.Contains(t, items, "File Storage Write Permission")
}

func TestDatanodeCheckMissingStorageDirectoryFails(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	c := NewDatanodeChecker(&config.DatanodeConfig{
		MetaserviceAddrs: []string{"meta-0:3002"},
		Storage:          config.StorageConfig{Provider: "file", Root: root},
	}, false)
	c.dial = connectedDialer(t)

	result := c.Check(context.Background())

	assert.False(t, result.Success)
	var found bool
	for _, d := range result.Details {
		if d.Item == "File Storage Directory" {
			found = true
			assert.Equal(t, checker.StatusFail, d.Status)
			assert.Contains(t, d.Message, root)
		}
	}
	assert.True(t, found)
}

func TestMetaserviceCheckMemoryStore(t *testing.T) {
	c := NewMetaserviceChecker(&config.MetaserviceConfig{
		Store: config.StoreConfig{Backend: "memory"},
	})

	result := c.Check(context.Background())

	assert.Equal(t, "Metaservice", c.ComponentName())
	assert.True(t, result.Success)
	require.Len(t, result.Details, 1)
	assert.Equal(t, "Memory Store", result.Details[0].Item)
	assert.Equal(t, checker.StatusPass, result.Details[0].Status)
}

func TestMetaserviceCheckUnknownBackend(t *testing.T) {
	c := NewMetaserviceChecker(&config.MetaserviceConfig{
		Store: config.StoreConfig{Backend: "consul"},
	})

	result := c.Check(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "consul")
}
