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

package metastore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/driftdb/preflight/checker"
	"github.com/driftdb/preflight/config"

	// SQL drivers for the relational store families.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Backend family tags recognized by the verifier.
const (
	BackendEtcd     = "etcd"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendMemory   = "memory"
)

// Verifier checks that the configured metadata store backend is reachable,
// correctly credentialed, and functionally usable.
type Verifier struct {
	conf config.StoreConfig

	// newKvStore and openSQL build the backend clients; tests override them.
	newKvStore func(ctx context.Context, endpoints []string) (KvStore, error)
	openSQL    func(driver, dsn string) (*sql.DB, error)
}

// NewVerifier creates a Verifier over one store configuration snapshot.
func NewVerifier(conf config.StoreConfig) *Verifier {
	return &Verifier{
		conf:       conf,
		newKvStore: newEtcdStore,
		openSQL:    sql.Open,
	}
}

// Verify dispatches on the configured backend family.
func (v *Verifier) Verify(ctx context.Context) *checker.CheckResult {
	switch v.conf.Backend {
	case BackendEtcd:
		return v.verifyEtcd(ctx)
	case BackendPostgres:
		return v.verifySQL(ctx, postgresDialect)
	case BackendMySQL:
		return v.verifySQL(ctx, mysqlDialect)
	case BackendMemory:
		// Always available; no network access is attempted.
		return checker.SuccessResult(
			"Memory store requires no external dependencies",
			[]checker.CheckDetail{checker.PassDetail(
				"Memory Store",
				"Memory store is always available",
				nil,
			)},
		)
	default:
		return checker.FailureResult(
			fmt.Sprintf("Unknown store backend: %s", v.conf.Backend),
			[]checker.CheckDetail{checker.FailDetail(
				"Store Backend",
				fmt.Sprintf("Unsupported store backend: %s", v.conf.Backend),
				nil,
				"Use one of: etcd, postgres, mysql, memory",
			)},
		)
	}
}
