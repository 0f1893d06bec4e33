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
	"sync"
	"time"

	"github.com/driftdb/preflight/checker"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// perfOpTimeout bounds one benchmarking operation.
	perfOpTimeout = 60 * time.Second
	// concurrentWriters is the fixed fan-out of the concurrency probe.
	concurrentWriters = 10
	concurrentObjSize = 1 << 10
)

var perfSizes = []struct {
	size int
	name string
}{
	{1 << 10, "1KB"},
	{1 << 20, "1MB"},
	{10 << 20, "10MB"},
}

// performanceLane measures write/read latency and throughput over a fixed
// ascending set of payload sizes, then aggregate throughput of a fixed-size
// concurrent write batch. Slowness and benchmarking errors are warnings, not
// failures; only a byte-size mismatch on read-back is a hard failure.
func (v *Verifier) performanceLane(ctx context.Context, store ObjectStore) []checker.CheckDetail {
	var details []checker.CheckDetail
	for _, tc := range perfSizes {
		details = append(details, v.perfRoundTrip(ctx, store, tc.size, tc.name)...)
	}
	details = append(details, v.perfConcurrent(ctx, store)...)
	return details
}

func (v *Verifier) perfRoundTrip(ctx context.Context, store ObjectStore, size int, sizeName string) []checker.CheckDetail {
	var details []checker.CheckDetail
	key := fmt.Sprintf("preflight-perf/%s/%s", sizeName, uuid.New().String())
	payload := make([]byte, size)

	opCtx, cancel := context.WithTimeout(ctx, perfOpTimeout)
	start := time.Now()
	err := store.Write(opCtx, key, payload)
	cancel()
	if err != nil {
		details = append(details, perfWarn(
			fmt.Sprintf("S3 Write Latency (%s)", sizeName), "Write", err, checker.Elapsed(start)))
		return details
	}
	writeLatency := time.Since(start)
	details = append(details, checker.PassDetail(
		fmt.Sprintf("S3 Write Latency (%s)", sizeName),
		fmt.Sprintf("Write latency: %v (%.2f MB/s)", writeLatency, throughputMBs(size, writeLatency)),
		&writeLatency,
	))

	opCtx, cancel = context.WithTimeout(ctx, perfOpTimeout)
	start = time.Now()
	data, err := store.Read(opCtx, key)
	cancel()
	readLatency := time.Since(start)
	switch {
	case err != nil:
		details = append(details, perfWarn(
			fmt.Sprintf("S3 Read Latency (%s)", sizeName), "Read", err, &readLatency))
	case len(data) != size:
		details = append(details, checker.FailDetail(
			fmt.Sprintf("S3 Read Verification (%s)", sizeName),
			fmt.Sprintf("Data size mismatch: expected %d, got %d", size, len(data)),
			&readLatency,
			"Check S3 data integrity",
		))
	default:
		details = append(details, checker.PassDetail(
			fmt.Sprintf("S3 Read Latency (%s)", sizeName),
			fmt.Sprintf("Read latency: %v (%.2f MB/s)", readLatency, throughputMBs(len(data), readLatency)),
			&readLatency,
		))
	}

	if err := store.Delete(ctx, key); err != nil {
		logrus.Warnf("failed to delete perf probe object %s: %v", key, err)
	}
	return details
}

// perfConcurrent writes a fixed batch of small objects in parallel. Every key
// that was written successfully is cleaned up regardless of the verdict.
func (v *Verifier) perfConcurrent(ctx context.Context, store ObjectStore) []checker.CheckDetail {
	payload := make([]byte, concurrentObjSize)
	keys := make([]string, concurrentWriters)
	succeeded := make([]bool, concurrentWriters)
	for i := range keys {
		keys[i] = fmt.Sprintf("preflight-concurrent/%s-%d", uuid.New().String(), i)
	}

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < concurrentWriters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			opCtx, cancel := context.WithTimeout(ctx, perfOpTimeout)
			defer cancel()
			if err := store.Write(opCtx, keys[i], payload); err != nil {
				logrus.Debugf("concurrent write %s failed: %v", keys[i], err)
				return
			}
			succeeded[i] = true
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	var successes int
	for i := range succeeded {
		if succeeded[i] {
			successes++
		}
	}

	var details []checker.CheckDetail
	if successes == concurrentWriters {
		total := concurrentWriters * concurrentObjSize
		details = append(details, checker.PassDetail(
			"S3 Concurrent Write",
			fmt.Sprintf("Successfully wrote %d objects concurrently in %v (%.2f MB/s)",
				concurrentWriters, elapsed, throughputMBs(total, elapsed)),
			&elapsed,
		))
	} else {
		details = append(details, checker.WarnDetail(
			"S3 Concurrent Write",
			fmt.Sprintf("Only %d/%d concurrent writes succeeded", successes, concurrentWriters),
			&elapsed,
			"Check S3 rate limits and connection pool settings",
		))
	}

	for i := range keys {
		if !succeeded[i] {
			continue
		}
		if err := store.Delete(ctx, keys[i]); err != nil {
			logrus.Warnf("failed to delete concurrent probe object %s: %v", keys[i], err)
		}
	}
	return details
}

func perfWarn(item, op string, err error, duration *time.Duration) checker.CheckDetail {
	if err == context.DeadlineExceeded || isTimeoutErr(err) {
		return checker.WarnDetail(
			item,
			fmt.Sprintf("%s timed out after %v", op, perfOpTimeout),
			duration,
			"Storage is reachable but slow; check endpoint latency and payload sizing",
		)
	}
	return checker.WarnDetail(
		item,
		fmt.Sprintf("%s failed: %s", op, err),
		duration,
		"Benchmarking failed; functional checks above are authoritative",
	)
}

func isTimeoutErr(err error) bool {
	type timeout interface{ Timeout() bool }
	terr, ok := err.(timeout)
	return ok && terr.Timeout()
}

func throughputMBs(size int, d time.Duration) float64 {
	secs := d.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(size) / secs / (1024.0 * 1024.0)
}
