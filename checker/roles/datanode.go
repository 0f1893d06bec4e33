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

package roles

import (
	"context"

	"github.com/driftdb/preflight/checker"
	"github.com/driftdb/preflight/checker/probe"
	"github.com/driftdb/preflight/checker/storage"
	"github.com/driftdb/preflight/config"
)

// DatanodeChecker verifies a datanode deployment: metaservice reachability
// first, then the configured object storage backend.
type DatanodeChecker struct {
	conf               *config.DatanodeConfig
	includePerformance bool
	dial               probe.Dialer
}

// NewDatanodeChecker creates a checker bound to one configuration snapshot.
// When includePerformance is set, the storage verifier also runs its
// latency/throughput and concurrency benchmarks.
func NewDatanodeChecker(conf *config.DatanodeConfig, includePerformance bool) *DatanodeChecker {
	return &DatanodeChecker{conf: conf, includePerformance: includePerformance}
}

// ComponentName implements checker.ComponentChecker.
func (c *DatanodeChecker) ComponentName() string {
	return "Datanode"
}

// Check implements checker.ComponentChecker. Connectivity runs before the
// storage verifier so an early failure points at the likely root cause.
func (c *DatanodeChecker) Check(ctx context.Context) *checker.CheckResult {
	tcp := &probe.TCPProbe{
		Name:      "Metaservice",
		ConfKey:   "metaservice_addrs",
		Endpoints: c.conf.MetaserviceAddrs,
		Dial:      c.dial,
	}
	details := tcp.Probe()

	verifier := storage.NewVerifier(c.conf.Storage, c.includePerformance)
	details = append(details, verifier.Verify(ctx)...)

	return checker.NewCheckResult(details)
}
