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

package checker

import "context"

// ComponentChecker is the contract every role-level checker implements. A
// checker is bound to one immutable configuration snapshot and performs
// exactly one Check in normal usage; it keeps no state across runs.
type ComponentChecker interface {
	// Check runs the configured sub-checks in a fixed order and reduces
	// their details into one result.
	Check(ctx context.Context) *CheckResult

	// ComponentName identifies the role being checked.
	ComponentName() string
}
