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

package storage

import (
	"context"
	"fmt"

	"github.com/driftdb/preflight/checker"
	"github.com/driftdb/preflight/config"
	"github.com/pkg/errors"
)

// ErrUnsupportedProvider -
var ErrUnsupportedProvider = errors.New("unsupported storage provider")

// Provider -
type Provider string

var (
	// ProviderS3 -
	ProviderS3 Provider = "s3"
	// ProviderOSS -
	ProviderOSS Provider = "oss"
	// ProviderAzblob -
	ProviderAzblob Provider = "azblob"
	// ProviderGCS -
	ProviderGCS Provider = "gcs"
	// ProviderFile -
	ProviderFile Provider = "file"
)

func (p Provider) String() string {
	return string(p)
}

// Str2Provider converts a string to Provider.
func Str2Provider(value string) (Provider, error) {
	switch value {
	case ProviderS3.String():
		return ProviderS3, nil
	case ProviderOSS.String():
		return ProviderOSS, nil
	case ProviderAzblob.String():
		return ProviderAzblob, nil
	case ProviderGCS.String():
		return ProviderGCS, nil
	case ProviderFile.String():
		return ProviderFile, nil
	default:
		return "", ErrUnsupportedProvider
	}
}

// Verifier checks that a configured object storage backend is reachable,
// correctly credentialed, and able to serve real round trips.
type Verifier struct {
	conf               config.StorageConfig
	includePerformance bool

	// newStore builds the ObjectStore for the s3 provider; tests override it.
	newStore func(conf config.StorageConfig) (ObjectStore, error)
}

// NewVerifier creates a Verifier over one storage configuration snapshot.
func NewVerifier(conf config.StorageConfig, includePerformance bool) *Verifier {
	return &Verifier{
		conf:               conf,
		includePerformance: includePerformance,
		newStore:           newS3Store,
	}
}

// Verify dispatches on the configured provider and returns its details.
func (v *Verifier) Verify(ctx context.Context) []checker.CheckDetail {
	provider, err := Str2Provider(v.conf.Provider)
	if err != nil {
		return []checker.CheckDetail{checker.FailDetail(
			"Storage Provider",
			fmt.Sprintf("Unsupported storage provider: %s", v.conf.Provider),
			nil,
			"Use one of: s3, oss, azblob, gcs, file",
		)}
	}

	switch provider {
	case ProviderS3:
		return v.verifyS3(ctx)
	case ProviderFile:
		return v.verifyFile()
	case ProviderOSS:
		return stubDetail("OSS Storage", "OSS")
	case ProviderAzblob:
		return stubDetail("Azure Blob Storage", "Azure Blob")
	default:
		return stubDetail("Google Cloud Storage", "GCS")
	}
}

// Recognized providers without a deep check emit one warning; the run as a
// whole never fails solely because a backend family lacks an implementation.
func stubDetail(item, name string) []checker.CheckDetail {
	return []checker.CheckDetail{checker.WarnDetail(
		item,
		fmt.Sprintf("%s storage check not fully implemented yet", name),
		nil,
		fmt.Sprintf("%s support is planned for future versions", name),
	)}
}
