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
	"strconv"
	"strings"
)

// MissingPortError is returned when an address carries no port at all.
type MissingPortError struct {
	Address string
}

func (e *MissingPortError) Error() string {
	return fmt.Sprintf("address must contain port number: %s", e.Address)
}

// InvalidPortError is returned when the port part of an address is not a
// valid unsigned 16-bit integer. It keeps both the full address and the
// offending substring for diagnostics.
type InvalidPortError struct {
	Address string
	Port    string
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid port number in address %s: %s", e.Address, e.Port)
}

// ParseAddress splits a connection address into host and port. An optional
// http:// or https:// scheme is stripped, the split happens on the last ':'
// (the configured format is plain host:port), and any trailing /path after
// the port is ignored.
func ParseAddress(addr string) (string, uint16, error) {
	hostport := addr
	hostport = strings.TrimPrefix(hostport, "http://")
	hostport = strings.TrimPrefix(hostport, "https://")

	idx := strings.LastIndex(hostport, ":")
	if idx < 0 {
		return "", 0, &MissingPortError{Address: addr}
	}

	host := hostport[:idx]
	portStr := hostport[idx+1:]
	if slash := strings.Index(portStr, "/"); slash >= 0 {
		portStr = portStr[:slash]
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, &InvalidPortError{Address: addr, Port: portStr}
	}
	return host, uint16(port), nil
}
