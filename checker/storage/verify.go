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
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/driftdb/preflight/checker"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var probePayload = []byte("driftdb-preflight-probe-data")

// verifyS3 runs the S3 verification protocol: client construction, bucket
// permission discovery, a write/read/delete round trip, and optionally the
// performance lane. Client construction failure is terminal for the verifier.
func (v *Verifier) verifyS3(ctx context.Context) []checker.CheckDetail {
	var details []checker.CheckDetail
	start := time.Now()

	store, err := v.newStore(v.conf)
	if err != nil {
		return append(details, checker.FailDetail(
			"S3 Client Creation",
			fmt.Sprintf("Failed to create S3 client: %s", err),
			checker.Elapsed(start),
			"Check S3 configuration and credentials",
		))
	}
	details = append(details, checker.PassDetail(
		"S3 Client Creation",
		"S3 client created successfully",
		checker.Elapsed(start),
	))

	details = append(details, v.discoverPermissions(ctx, store)...)
	details = append(details, v.roundTrip(ctx, store)...)

	if v.includePerformance {
		details = append(details, v.performanceLane(ctx, store)...)
	}
	return details
}

// discoverPermissions probes the list permission against the bucket root and
// reads a guaranteed-nonexistent key to separate "no object" from "no read
// access". Unclassified list errors are treated as possibly transient.
func (v *Verifier) discoverPermissions(ctx context.Context, store ObjectStore) []checker.CheckDetail {
	var details []checker.CheckDetail

	start := time.Now()
	err := store.List(ctx, "", 1)
	switch classifyError(err) {
	case classUnknown:
		if err != nil {
			details = append(details, checker.WarnDetail(
				"S3 List Permission",
				fmt.Sprintf("Bucket listing failed with unclassified error: %s", err),
				checker.Elapsed(start),
				"The error may be transient; check network connectivity to the S3 endpoint",
			))
			break
		}
		details = append(details, checker.PassDetail(
			"S3 List Permission",
			fmt.Sprintf("Successfully listed bucket '%s'", v.conf.Bucket),
			checker.Elapsed(start),
		))
	case classAccessDenied:
		details = append(details, checker.FailDetail(
			"S3 List Permission",
			fmt.Sprintf("Access denied listing bucket '%s': %s", v.conf.Bucket, err),
			checker.Elapsed(start),
			"Grant s3:ListBucket permission to the configured credentials",
		))
	case classNoSuchBucket:
		details = append(details, checker.FailDetail(
			"S3 Bucket Existence",
			fmt.Sprintf("Bucket '%s' does not exist: %s", v.conf.Bucket, err),
			checker.Elapsed(start),
			"Create the bucket or fix the bucket name in the storage configuration",
		))
	case classInvalidAccessKey:
		details = append(details, checker.FailDetail(
			"S3 Credentials",
			fmt.Sprintf("Access key id rejected: %s", err),
			checker.Elapsed(start),
			"Check the access_key_id in the storage configuration",
		))
	case classInvalidSecret:
		details = append(details, checker.FailDetail(
			"S3 Credentials",
			fmt.Sprintf("Secret access key rejected: %s", err),
			checker.Elapsed(start),
			"Check the secret_access_key in the storage configuration",
		))
	default:
		details = append(details, checker.WarnDetail(
			"S3 List Permission",
			fmt.Sprintf("Bucket listing failed: %s", err),
			checker.Elapsed(start),
			"The error may be transient; check network connectivity to the S3 endpoint",
		))
	}

	// Negative probe: reading a key that cannot exist must yield not-found.
	missingKey := fmt.Sprintf("preflight-missing/%s", uuid.New().String())
	start = time.Now()
	data, err := store.Read(ctx, missingKey)
	switch {
	case err == nil:
		details = append(details, checker.WarnDetail(
			"S3 Negative Read Probe",
			fmt.Sprintf("Read of nonexistent key '%s' unexpectedly returned %d bytes", missingKey, len(data)),
			checker.Elapsed(start),
			"Check whether the bucket is shared with another system writing under this root",
		))
	case isNotFound(err):
		details = append(details, checker.PassDetail(
			"S3 Negative Read Probe",
			"Nonexistent key correctly reported as not found",
			checker.Elapsed(start),
		))
	case isAccessDenied(err):
		details = append(details, checker.FailDetail(
			"S3 Negative Read Probe",
			fmt.Sprintf("Access denied reading from bucket '%s': %s", v.conf.Bucket, err),
			checker.Elapsed(start),
			"Grant s3:GetObject permission to the configured credentials",
		))
	default:
		details = append(details, checker.WarnDetail(
			"S3 Negative Read Probe",
			fmt.Sprintf("Probe read failed with unclassified error: %s", err),
			checker.Elapsed(start),
			"The error may be transient; check network connectivity to the S3 endpoint",
		))
	}

	return details
}

// roundTrip writes a uniquely named probe object, reads it back and compares
// bytes, then deletes it. Read and delete are skipped when the write failed.
func (v *Verifier) roundTrip(ctx context.Context, store ObjectStore) []checker.CheckDetail {
	var details []checker.CheckDetail
	probeKey := fmt.Sprintf("preflight-probe/%s", uuid.New().String())

	start := time.Now()
	if err := store.Write(ctx, probeKey, probePayload); err != nil {
		return append(details, checker.FailDetail(
			"S3 PUT Operation",
			fmt.Sprintf("PUT operation failed: %s", err),
			checker.Elapsed(start),
			"Check S3 credentials, bucket permissions, and network connectivity",
		))
	}
	details = append(details, checker.PassDetail(
		"S3 PUT Operation",
		"PUT operation successful",
		checker.Elapsed(start),
	))

	start = time.Now()
	data, err := store.Read(ctx, probeKey)
	switch {
	case err != nil:
		details = append(details, checker.FailDetail(
			"S3 GET Operation",
			fmt.Sprintf("GET operation failed: %s", err),
			checker.Elapsed(start),
			"Check S3 read permissions",
		))
	case !bytes.Equal(data, probePayload):
		details = append(details, checker.FailDetail(
			"S3 GET Operation",
			"GET operation returned incorrect data",
			checker.Elapsed(start),
			"Check S3 data consistency",
		))
	default:
		details = append(details, checker.PassDetail(
			"S3 GET Operation",
			"GET operation successful and data matches",
			checker.Elapsed(start),
		))
	}

	start = time.Now()
	if err := store.Delete(ctx, probeKey); err != nil {
		logrus.Warnf("failed to delete probe object %s: %v", probeKey, err)
		details = append(details, checker.WarnDetail(
			"S3 DELETE Operation",
			fmt.Sprintf("DELETE operation failed: %s", err),
			checker.Elapsed(start),
			"Probe object may remain in the bucket, but this doesn't affect functionality",
		))
	} else {
		details = append(details, checker.PassDetail(
			"S3 DELETE Operation",
			"DELETE operation successful",
			checker.Elapsed(start),
		))
	}

	return details
}
