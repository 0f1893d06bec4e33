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

package probe

import (
	"fmt"
	"net"
	"time"

	"github.com/driftdb/preflight/checker"
	"github.com/sirupsen/logrus"
)

// DefaultConnectTimeout bounds one TCP connection attempt.
const DefaultConnectTimeout = 10 * time.Second

// Dialer is the capability used to open one TCP connection.
type Dialer func(network, address string, timeout time.Duration) (net.Conn, error)

// TCPProbe tests reachability of a set of endpoints. Endpoints are probed
// independently; one bad endpoint never aborts the rest of the batch.
type TCPProbe struct {
	// Name labels the probed dependency in detail items, e.g. "Metaservice".
	Name string
	// ConfKey is the configuration key named in suggestions when no
	// endpoints are configured.
	ConfKey   string
	Endpoints []string
	Timeout   time.Duration
	Dial      Dialer
}

// Probe produces exactly one detail per configured endpoint, or a single
// failure when no endpoint is configured at all.
func (p *TCPProbe) Probe() []checker.CheckDetail {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	dial := p.Dial
	if dial == nil {
		dial = net.DialTimeout
	}

	if len(p.Endpoints) == 0 {
		return []checker.CheckDetail{checker.FailDetail(
			fmt.Sprintf("%s Configuration", p.Name),
			fmt.Sprintf("No %s addresses configured", p.Name),
			nil,
			fmt.Sprintf("Add %s addresses to %s configuration", p.Name, p.ConfKey),
		)}
	}

	var details []checker.CheckDetail
	for i, addr := range p.Endpoints {
		start := time.Now()

		host, port, err := ParseAddress(addr)
		if err != nil {
			details = append(details, checker.FailDetail(
				fmt.Sprintf("%s Address %d Parsing", p.Name, i+1),
				fmt.Sprintf("Failed to parse address '%s': %s", addr, err),
				nil,
				"Check address format (should be host:port)",
			))
			continue
		}

		logrus.Debugf("probing tcp endpoint %s:%d", host, port)
		conn, err := dial("tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)), timeout)
		item := fmt.Sprintf("%s Connectivity %d", p.Name, i+1)
		switch {
		case err == nil:
			conn.Close()
			details = append(details, checker.PassDetail(
				item,
				fmt.Sprintf("Successfully connected to %s at %s", p.Name, addr),
				checker.Elapsed(start),
			))
		case isTimeout(err):
			details = append(details, checker.FailDetail(
				item,
				fmt.Sprintf("Connection to %s at %s timed out", p.Name, addr),
				checker.Elapsed(start),
				fmt.Sprintf("Check network connectivity and %s availability", p.Name),
			))
		default:
			details = append(details, checker.FailDetail(
				item,
				fmt.Sprintf("Failed to connect to %s at %s: %s", p.Name, addr, err),
				checker.Elapsed(start),
				fmt.Sprintf("Check if %s is running and accessible", p.Name),
			))
		}
	}
	return details
}

func isTimeout(err error) bool {
	nerr, ok := err.(net.Error)
	return ok && nerr.Timeout()
}
