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
	"github.com/driftdb/preflight/checker/metastore"
	"github.com/driftdb/preflight/config"
)

// MetaserviceChecker verifies a metaservice deployment: the configured
// metadata store backend must be reachable and functionally usable.
type MetaserviceChecker struct {
	conf *config.MetaserviceConfig
}

// NewMetaserviceChecker creates a checker bound to one configuration snapshot.
func NewMetaserviceChecker(conf *config.MetaserviceConfig) *MetaserviceChecker {
	return &MetaserviceChecker{conf: conf}
}

// ComponentName implements checker.ComponentChecker.
func (c *MetaserviceChecker) ComponentName() string {
	return "Metaservice"
}

// Check implements checker.ComponentChecker.
func (c *MetaserviceChecker) Check(ctx context.Context) *checker.CheckResult {
	return metastore.NewVerifier(c.conf.Store).Verify(ctx)
}
