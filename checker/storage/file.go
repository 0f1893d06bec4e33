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
	"fmt"
	"os"
	"path/filepath"

	"github.com/driftdb/preflight/checker"
	"github.com/google/uuid"
)

// verifyFile checks local file storage: the configured root must exist and be
// a directory, and a uniquely named probe file must be writable and removable.
func (v *Verifier) verifyFile() []checker.CheckDetail {
	var details []checker.CheckDetail

	root := v.conf.Root
	if root == "" {
		root = "./data"
	}

	info, err := os.Stat(root)
	if err != nil {
		return append(details, checker.FailDetail(
			"File Storage Directory",
			fmt.Sprintf("Storage directory '%s' does not exist or is not accessible: %s", root, err),
			nil,
			"Create the storage directory or check permissions",
		))
	}
	if !info.IsDir() {
		return append(details, checker.FailDetail(
			"File Storage Directory",
			fmt.Sprintf("Storage path '%s' exists but is not a directory", root),
			nil,
			"Ensure storage root points to a directory",
		))
	}
	details = append(details, checker.PassDetail(
		"File Storage Directory",
		fmt.Sprintf("Storage directory '%s' exists", root),
		nil,
	))

	probeFile := filepath.Join(root, fmt.Sprintf("preflight_probe_%s", uuid.New().String()))
	if err := os.WriteFile(probeFile, probePayload, 0644); err != nil {
		details = append(details, checker.FailDetail(
			"File Storage Write Permission",
			fmt.Sprintf("Write permission test failed: %s", err),
			nil,
			"Check directory permissions",
		))
		return details
	}
	details = append(details, checker.PassDetail(
		"File Storage Write Permission",
		"Write permission verified",
		nil,
	))

	// Unlike object-store probe cleanup, failing to remove the probe file
	// indicates broken delete permission on the data directory.
	if err := os.Remove(probeFile); err != nil {
		details = append(details, checker.FailDetail(
			"File Storage Cleanup",
			fmt.Sprintf("Failed to remove probe file '%s': %s", probeFile, err),
			nil,
			"Check delete permission on the storage directory",
		))
	}

	return details
}
