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

// Package roles implements the role-level checkers: one per DriftDB
// component, each fanning out to the connectivity and backend verifiers and
// reducing their details into a single result.
package roles

import (
	"context"
	"fmt"

	"github.com/driftdb/preflight/checker"
	"github.com/driftdb/preflight/checker/probe"
	"github.com/driftdb/preflight/config"
)

// CoordinatorChecker verifies a coordinator deployment: metaservice
// reachability first, then the announced server addresses.
type CoordinatorChecker struct {
	conf *config.CoordinatorConfig
	dial probe.Dialer
}

// NewCoordinatorChecker creates a checker bound to one configuration snapshot.
func NewCoordinatorChecker(conf *config.CoordinatorConfig) *CoordinatorChecker {
	return &CoordinatorChecker{conf: conf}
}

// ComponentName implements checker.ComponentChecker.
func (c *CoordinatorChecker) ComponentName() string {
	return "Coordinator"
}

// Check implements checker.ComponentChecker.
func (c *CoordinatorChecker) Check(ctx context.Context) *checker.CheckResult {
	tcp := &probe.TCPProbe{
		Name:      "Metaservice",
		ConfKey:   "metaservice_addrs",
		Endpoints: c.conf.MetaserviceAddrs,
		Dial:      c.dial,
	}
	details := tcp.Probe()
	details = append(details, checkServerConfig(c.conf.Server)...)
	return checker.NewCheckResult(details)
}

// checkServerConfig validates the listen addresses a role announces. A
// missing server section is a warning only; defaults apply.
func checkServerConfig(server *config.ServerConfig) []checker.CheckDetail {
	if server == nil {
		return []checker.CheckDetail{checker.WarnDetail(
			"Server Configuration",
			"No server configuration found, using defaults",
			nil,
			"Consider adding server configuration for production use",
		)}
	}

	var details []checker.CheckDetail
	fields := []struct {
		item string
		addr string
	}{
		{"Server Address Configuration", server.Addr},
		{"HTTP Address Configuration", server.HTTPAddr},
		{"gRPC Address Configuration", server.GRPCAddr},
	}
	for _, f := range fields {
		if f.addr == "" {
			continue
		}
		if _, _, err := probe.ParseAddress(f.addr); err != nil {
			details = append(details, checker.FailDetail(
				f.item,
				fmt.Sprintf("Invalid address '%s': %s", f.addr, err),
				nil,
				"Check address format (should be host:port)",
			))
			continue
		}
		details = append(details, checker.PassDetail(
			f.item,
			fmt.Sprintf("Address '%s' is valid", f.addr),
			nil,
		))
	}
	return details
}
