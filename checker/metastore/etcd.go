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
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/etcd/clientv3"
	"github.com/driftdb/preflight/checker"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	etcdDialTimeout    = 5 * time.Second
	etcdRequestTimeout = 10 * time.Second

	// The read-back probe retries to absorb the eventual-consistency
	// window between an acknowledged write and its visibility.
	readRetryAttempts = 3
	readRetryDelay    = 100 * time.Millisecond
)

// KvStore is the capability the coordination-store protocol runs against.
// The production implementation wraps etcd clientv3; tests substitute fakes.
type KvStore interface {
	Put(ctx context.Context, key string, value []byte) error
	// Get returns the value and whether the key was present at all.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

type etcdStore struct {
	cli *clientv3.Client
}

func newEtcdStore(ctx context.Context, endpoints []string) (KvStore, error) {
	cli, err := clientv3.New(clientv3.Config{
		Context:     ctx,
		Endpoints:   endpoints,
		DialTimeout: etcdDialTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &etcdStore{cli: cli}, nil
}

func (s *etcdStore) Put(ctx context.Context, key string, value []byte) error {
	reqCtx, cancel := context.WithTimeout(ctx, etcdRequestTimeout)
	defer cancel()
	_, err := s.cli.Put(reqCtx, key, string(value))
	return err
}

func (s *etcdStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, etcdRequestTimeout)
	defer cancel()
	resp, err := s.cli.Get(reqCtx, key)
	if err != nil {
		return nil, false, err
	}
	if len(resp.Kvs) == 0 {
		return nil, false, nil
	}
	return resp.Kvs[0].Value, true, nil
}

func (s *etcdStore) Delete(ctx context.Context, key string) error {
	reqCtx, cancel := context.WithTimeout(ctx, etcdRequestTimeout)
	defer cancel()
	_, err := s.cli.Delete(reqCtx, key)
	return err
}

func (s *etcdStore) Close() error {
	return s.cli.Close()
}

// verifyEtcd runs the coordination-store protocol: connect, write a probe
// key, read it back with bounded retry, then delete it.
func (v *Verifier) verifyEtcd(ctx context.Context) *checker.CheckResult {
	var details []checker.CheckDetail

	if len(v.conf.StoreAddrs) == 0 {
		return checker.NewCheckResult([]checker.CheckDetail{checker.FailDetail(
			"Etcd Configuration",
			"No etcd endpoints configured",
			nil,
			"Add etcd endpoints to store_addrs configuration",
		)})
	}

	start := time.Now()
	store, err := v.newKvStore(ctx, v.conf.StoreAddrs)
	if err != nil {
		return checker.NewCheckResult([]checker.CheckDetail{checker.FailDetail(
			"Etcd Connection",
			fmt.Sprintf("Failed to connect to etcd: %s", err),
			checker.Elapsed(start),
			"Check etcd service status and network connectivity",
		)})
	}
	defer store.Close()

	probeKey := fmt.Sprintf("%s/__preflight_probe/%s",
		strings.TrimSuffix(v.conf.KeyPrefix, "/"), uuid.New().String())
	probeValue := []byte("driftdb-preflight-probe-value")

	// The client dials lazily; the first request proves real connectivity.
	if err := store.Put(ctx, probeKey, probeValue); err != nil {
		details = append(details, checker.FailDetail(
			"Etcd Connection",
			fmt.Sprintf("Failed to connect to etcd: %s", err),
			checker.Elapsed(start),
			"Check etcd service status and network connectivity",
		))
		return checker.NewCheckResult(details)
	}
	details = append(details, checker.PassDetail(
		"Etcd Connection",
		fmt.Sprintf("Successfully connected to etcd endpoints: %v", v.conf.StoreAddrs),
		checker.Elapsed(start),
	))
	details = append(details, checker.PassDetail(
		"Etcd PUT Operation",
		"PUT operation successful",
		nil,
	))

	details = append(details, readBackWithRetry(ctx, store, probeKey, probeValue))

	start = time.Now()
	if err := store.Delete(ctx, probeKey); err != nil {
		details = append(details, checker.WarnDetail(
			"Etcd DELETE Operation",
			fmt.Sprintf("DELETE operation failed: %s", err),
			checker.Elapsed(start),
			"Probe key may remain in etcd, but this doesn't affect functionality",
		))
	} else {
		details = append(details, checker.PassDetail(
			"Etcd DELETE Operation",
			"DELETE operation successful",
			checker.Elapsed(start),
		))
	}

	return checker.NewCheckResult(details)
}

// readBackWithRetry reads the probe key until it returns the written bytes,
// up to readRetryAttempts with a short delay in between. Success on any
// attempt short-circuits the loop.
func readBackWithRetry(ctx context.Context, store KvStore, key string, want []byte) checker.CheckDetail {
	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= readRetryAttempts; attempt++ {
		value, found, err := store.Get(ctx, key)
		if err == nil && found && bytes.Equal(value, want) {
			msg := "GET operation successful and data matches"
			if attempt > 1 {
				msg = fmt.Sprintf("GET operation successful and data matches (attempt %d)", attempt)
			}
			return checker.PassDetail("Etcd GET Operation", msg, checker.Elapsed(start))
		}
		lastErr = err
		logrus.Debugf("etcd read-back attempt %d/%d did not match (found=%v, err=%v)",
			attempt, readRetryAttempts, found, err)
		if attempt < readRetryAttempts {
			time.Sleep(readRetryDelay)
		}
	}

	message := fmt.Sprintf("GET operation did not return matching data after %d attempts", readRetryAttempts)
	if lastErr != nil {
		message = fmt.Sprintf("%s, last error: %s", message, lastErr)
	}
	return checker.FailDetail(
		"Etcd GET Operation",
		message,
		checker.Elapsed(start),
		"Check etcd data consistency and cluster health",
	)
}
