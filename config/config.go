// DRIFTDB, Distributed Analytics Database
// Copyright (C) 2024-2026 Driftdb Co., Ltd.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version. For any non-GPL usage of DriftDB,
// one or multiple Commercial Licenses authorized by Driftdb Co., Ltd.
// must be obtained first.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// CoordinatorConfig configures a coordinator preflight run.
type CoordinatorConfig struct {
	// MetaserviceAddrs are the metaservice endpoints the coordinator
	// depends on, as host:port.
	MetaserviceAddrs []string      `json:"metaservice_addrs"`
	Server           *ServerConfig `json:"server,omitempty"`
}

// DatanodeConfig configures a datanode preflight run.
type DatanodeConfig struct {
	MetaserviceAddrs []string      `json:"metaservice_addrs"`
	Storage          StorageConfig `json:"storage"`
	Server           *ServerConfig `json:"server,omitempty"`
}

// MetaserviceConfig configures a metaservice preflight run.
type MetaserviceConfig struct {
	Store  StoreConfig   `json:"store"`
	Server *ServerConfig `json:"server,omitempty"`
}

// ServerConfig holds the listen addresses a role announces. All fields are
// optional; present ones are validated for host:port shape.
type ServerConfig struct {
	Addr     string `json:"addr,omitempty"`
	HTTPAddr string `json:"http_addr,omitempty"`
	GRPCAddr string `json:"grpc_addr,omitempty"`
}

// StoreConfig selects and configures the metaservice metadata backend.
type StoreConfig struct {
	// Backend is one of: etcd, postgres, mysql, memory.
	Backend string `json:"backend"`
	// StoreAddrs are etcd endpoints or a SQL connection string.
	StoreAddrs []string `json:"store_addrs"`
	// KeyPrefix namespaces etcd keys.
	KeyPrefix string `json:"key_prefix,omitempty"`
	// MetaTableName is the metadata table for the SQL backends.
	MetaTableName string `json:"meta_table_name,omitempty"`
}

// StorageConfig selects and configures the datanode object storage backend.
type StorageConfig struct {
	// Provider is one of: s3, oss, azblob, gcs, file.
	Provider string `json:"provider"`

	Bucket          string `json:"bucket,omitempty"`
	Root            string `json:"root,omitempty"`
	AccessKeyID     string `json:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
	Region          string `json:"region,omitempty"`
}

// DefaultMetaTableName is used when a SQL store config does not name one.
const DefaultMetaTableName = "driftdb_meta"

// TableName returns the configured metadata table name or the default.
func (c *StoreConfig) TableName() string {
	if c.MetaTableName == "" {
		return DefaultMetaTableName
	}
	return c.MetaTableName
}

// LoadCoordinatorConfig reads a coordinator config from a YAML file.
func LoadCoordinatorConfig(path string) (*CoordinatorConfig, error) {
	var conf CoordinatorConfig
	if err := loadYAML(path, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// LoadDatanodeConfig reads a datanode config from a YAML file.
func LoadDatanodeConfig(path string) (*DatanodeConfig, error) {
	var conf DatanodeConfig
	if err := loadYAML(path, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// LoadMetaserviceConfig reads a metaservice config from a YAML file.
func LoadMetaserviceConfig(path string) (*MetaserviceConfig, error) {
	var conf MetaserviceConfig
	if err := loadYAML(path, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config file %s", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}
