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
	"time"

	"github.com/driftdb/preflight/checker"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// sqlDialect carries the per-family SQL for the relational-store protocol.
// createTable is nil for families whose setup never creates the table here.
type sqlDialect struct {
	name        string
	driver      string
	existsQuery string
	countQuery  func(table string) string
	upsert      func(table string) string
	deleteProbe func(table string) string
	createTable func(table string) string
}

var postgresDialect = sqlDialect{
	name:        "PostgreSQL",
	driver:      "postgres",
	existsQuery: "SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)",
	countQuery: func(table string) string {
		return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	},
	upsert: func(table string) string {
		return fmt.Sprintf("INSERT INTO %s (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v = $2", table)
	},
	deleteProbe: func(table string) string {
		return fmt.Sprintf("DELETE FROM %s WHERE k = $1", table)
	},
	createTable: func(table string) string {
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			k VARCHAR(255) PRIMARY KEY,
			v TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, table)
	},
}

var mysqlDialect = sqlDialect{
	name:        "MySQL",
	driver:      "mysql",
	existsQuery: "SELECT EXISTS (SELECT * FROM information_schema.tables WHERE table_name = ?)",
	countQuery: func(table string) string {
		return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	},
	upsert: func(table string) string {
		return fmt.Sprintf("INSERT INTO %s (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)", table)
	},
	deleteProbe: func(table string) string {
		return fmt.Sprintf("DELETE FROM %s WHERE k = ?", table)
	},
}

// verifySQL runs the relational-store protocol for one SQL family: connect,
// check the metadata table exists, then probe read/write (and, where the
// dialect supports it, create) permissions.
func (v *Verifier) verifySQL(ctx context.Context, dialect sqlDialect) *checker.CheckResult {
	if len(v.conf.StoreAddrs) == 0 {
		return checker.NewCheckResult([]checker.CheckDetail{checker.FailDetail(
			fmt.Sprintf("%s Configuration", dialect.name),
			fmt.Sprintf("No %s address configured", dialect.name),
			nil,
			fmt.Sprintf("Add a %s connection string to store_addrs", dialect.name),
		)})
	}
	addr := v.conf.StoreAddrs[0]

	start := time.Now()
	db, err := v.openSQL(dialect.driver, addr)
	if err == nil {
		err = db.PingContext(ctx)
	}
	if err != nil {
		return checker.NewCheckResult([]checker.CheckDetail{checker.FailDetail(
			fmt.Sprintf("%s Connection", dialect.name),
			fmt.Sprintf("Failed to connect to %s: %s", dialect.name, err),
			checker.Elapsed(start),
			"Check connection string, network connectivity, and database availability",
		)})
	}
	defer db.Close()

	details := []checker.CheckDetail{checker.PassDetail(
		fmt.Sprintf("%s Connection", dialect.name),
		fmt.Sprintf("Successfully connected to %s", dialect.name),
		checker.Elapsed(start),
	)}

	table := v.conf.TableName()
	var exists bool
	if err := db.QueryRowContext(ctx, dialect.existsQuery, table).Scan(&exists); err != nil {
		details = append(details, checker.FailDetail(
			"Metadata Table Check",
			fmt.Sprintf("Failed to check table existence: %s", err),
			nil,
			"Check database permissions and schema access",
		))
		return checker.NewCheckResult(details)
	}

	if exists {
		details = append(details, checker.PassDetail(
			"Metadata Table Existence",
			fmt.Sprintf("Table '%s' exists", table),
			nil,
		))
		details = append(details, probePermissions(ctx, db, dialect, table)...)
		return checker.NewCheckResult(details)
	}

	details = append(details, checker.WarnDetail(
		"Metadata Table Existence",
		fmt.Sprintf("Table '%s' does not exist, will be created automatically", table),
		nil,
		"This is normal for first-time setup",
	))

	if dialect.createTable != nil {
		details = append(details, probeCreate(ctx, db, dialect, table)...)
	}
	return checker.NewCheckResult(details)
}

// probePermissions checks read access via a count query and write access via
// an idempotent upsert of a probe row. The write probe is skipped when basic
// read access is already broken.
func probePermissions(ctx context.Context, db *sql.DB, dialect sqlDialect, table string) []checker.CheckDetail {
	var details []checker.CheckDetail

	var count int64
	if err := db.QueryRowContext(ctx, dialect.countQuery(table)).Scan(&count); err != nil {
		details = append(details, checker.FailDetail(
			fmt.Sprintf("%s Read Permission", dialect.name),
			fmt.Sprintf("Failed to read from table '%s': %s", table, err),
			nil,
			"Grant SELECT permission on the metadata table",
		))
		// No point probing writes once read access is broken.
		return details
	}
	details = append(details, checker.PassDetail(
		fmt.Sprintf("%s Read Permission", dialect.name),
		fmt.Sprintf("Successfully read from table '%s'", table),
		nil,
	))

	probeKey := fmt.Sprintf("preflight_probe_%s", uuid.New().String())
	if _, err := db.ExecContext(ctx, dialect.upsert(table), probeKey, "preflight_probe_value"); err != nil {
		details = append(details, checker.FailDetail(
			fmt.Sprintf("%s Write Permission", dialect.name),
			fmt.Sprintf("Failed to write to table '%s': %s", table, err),
			nil,
			"Grant INSERT/UPDATE permission on the metadata table",
		))
		return details
	}
	details = append(details, checker.PassDetail(
		fmt.Sprintf("%s Write Permission", dialect.name),
		fmt.Sprintf("Successfully wrote to table '%s'", table),
		nil,
	))

	if _, err := db.ExecContext(ctx, dialect.deleteProbe(table), probeKey); err != nil {
		logrus.Warnf("failed to delete probe row %s from %s: %v", probeKey, table, err)
		details = append(details, checker.WarnDetail(
			fmt.Sprintf("%s Probe Cleanup", dialect.name),
			fmt.Sprintf("Failed to delete probe row from table '%s': %s", table, err),
			nil,
			"Probe row may remain in the metadata table, but this doesn't affect functionality",
		))
	}

	return details
}

// probeCreate checks create-table permission and, on success, immediately
// re-runs the read/write probes against the newly created table.
func probeCreate(ctx context.Context, db *sql.DB, dialect sqlDialect, table string) []checker.CheckDetail {
	var details []checker.CheckDetail

	if _, err := db.ExecContext(ctx, dialect.createTable(table)); err != nil {
		details = append(details, checker.FailDetail(
			fmt.Sprintf("%s Create Permission", dialect.name),
			fmt.Sprintf("Failed to create table '%s': %s", table, err),
			nil,
			"Grant CREATE permission on the database/schema",
		))
		return details
	}
	details = append(details, checker.PassDetail(
		fmt.Sprintf("%s Create Permission", dialect.name),
		fmt.Sprintf("Successfully created/verified table '%s'", table),
		nil,
	))

	details = append(details, probePermissions(ctx, db, dialect, table)...)
	return details
}
