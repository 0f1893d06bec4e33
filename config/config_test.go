package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCoordinatorConfig(t *testing.T) {
	path := writeConfig(t, `
metaservice_addrs:
  - meta-0:3002
  - meta-1:3002
server:
  addr: 0.0.0.0:4000
  http_addr: 0.0.0.0:4001
`)

	conf, err := LoadCoordinatorConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"meta-0:3002", "meta-1:3002"}, conf.MetaserviceAddrs)
	require.NotNil(t, conf.Server)
	assert.Equal(t, "0.0.0.0:4000", conf.Server.Addr)
	assert.Equal(t, "0.0.0.0:4001", conf.Server.HTTPAddr)
	assert.Empty(t, conf.Server.GRPCAddr)
}

func TestLoadCoordinatorConfigWithoutServerSection(t *testing.T) {
	path := writeConfig(t, "metaservice_addrs: [meta-0:3002]\n")

	conf, err := LoadCoordinatorConfig(path)
	require.NoError(t, err)
	assert.Nil(t, conf.Server)
}

func TestLoadDatanodeConfig(t *testing.T) {
	path := writeConfig(t, `
metaservice_addrs:
  - meta-0:3002
storage:
  provider: s3
  bucket: driftdb-data
  root: /cluster-1
  access_key_id: AKEXAMPLE
  secret_access_key: secret
  endpoint: http://minio:9000
  region: us-west-2
`)

	conf, err := LoadDatanodeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "s3", conf.Storage.Provider)
	assert.Equal(t, "driftdb-data", conf.Storage.Bucket)
	assert.Equal(t, "/cluster-1", conf.Storage.Root)
	assert.Equal(t, "http://minio:9000", conf.Storage.Endpoint)
	assert.Equal(t, "us-west-2", conf.Storage.Region)
}

func TestLoadMetaserviceConfig(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: etcd
  store_addrs:
    - etcd-0:2379
  key_prefix: /driftdb
`)

	conf, err := LoadMetaserviceConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "etcd", conf.Store.Backend)
	assert.Equal(t, []string{"etcd-0:2379"}, conf.Store.StoreAddrs)
	assert.Equal(t, "/driftdb", conf.Store.KeyPrefix)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadCoordinatorConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "metaservice_addrs: [unclosed\n")
	_, err := LoadCoordinatorConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestStoreConfigTableName(t *testing.T) {
	c := StoreConfig{}
	assert.Equal(t, DefaultMetaTableName, c.TableName())

	c.MetaTableName = "custom_meta"
	assert.Equal(t, "custom_meta", c.TableName())
}
