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

import (
	"fmt"
	"time"
)

// CheckStatus is the outcome of a single check item.
type CheckStatus string

const (
	// StatusPass check passed
	StatusPass CheckStatus = "PASS"
	// StatusFail check failed
	StatusFail CheckStatus = "FAIL"
	// StatusWarning check passed with warnings
	StatusWarning CheckStatus = "WARNING"
)

// CheckDetail is the result of one evaluated item. A detail is created by a
// verifier and never mutated afterwards.
type CheckDetail struct {
	Item       string         `json:"item"`
	Status     CheckStatus    `json:"status"`
	Message    string         `json:"message"`
	Duration   *time.Duration `json:"duration,omitempty"`
	Suggestion string         `json:"suggestion,omitempty"`
}

// CheckResult is the aggregate of one component check run.
type CheckResult struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Details       []CheckDetail  `json:"details"`
	TotalDuration *time.Duration `json:"total_duration,omitempty"`
}

// PassDetail creates a passing detail.
func PassDetail(item, message string, duration *time.Duration) CheckDetail {
	return CheckDetail{Item: item, Status: StatusPass, Message: message, Duration: duration}
}

// FailDetail creates a failing detail with an optional remediation suggestion.
func FailDetail(item, message string, duration *time.Duration, suggestion string) CheckDetail {
	return CheckDetail{Item: item, Status: StatusFail, Message: message, Duration: duration, Suggestion: suggestion}
}

// WarnDetail creates a warning detail with an optional remediation suggestion.
func WarnDetail(item, message string, duration *time.Duration, suggestion string) CheckDetail {
	return CheckDetail{Item: item, Status: StatusWarning, Message: message, Duration: duration, Suggestion: suggestion}
}

// Elapsed returns a pointer to the wall-clock time since start, for use as a
// detail duration.
func Elapsed(start time.Time) *time.Duration {
	d := time.Since(start)
	return &d
}

// NewCheckResult reduces a list of details into one result. The run succeeds
// iff no detail failed; warnings count toward success. The total duration is
// the sum of the durations that were recorded, nil when none were.
func NewCheckResult(details []CheckDetail) *CheckResult {
	var passed, warned, failed int
	for _, d := range details {
		switch d.Status {
		case StatusFail:
			failed++
		case StatusWarning:
			warned++
		default:
			passed++
		}
	}

	var message string
	switch {
	case failed > 0:
		message = fmt.Sprintf("Some checks failed (%d passed, %d warnings, %d failed)", passed, warned, failed)
	case warned > 0:
		message = fmt.Sprintf("Checks completed with warnings (%d passed, %d warnings)", passed, warned)
	default:
		message = fmt.Sprintf("All checks passed (%d passed)", passed)
	}

	return &CheckResult{
		Success:       failed == 0,
		Message:       message,
		Details:       details,
		TotalDuration: sumDurations(details),
	}
}

// SuccessResult creates a result whose verdict is already known to the caller,
// bypassing the derivation rule.
func SuccessResult(message string, details []CheckDetail) *CheckResult {
	return &CheckResult{
		Success:       true,
		Message:       message,
		Details:       details,
		TotalDuration: sumDurations(details),
	}
}

// FailureResult creates a failed result whose verdict is already known to the
// caller, bypassing the derivation rule.
func FailureResult(message string, details []CheckDetail) *CheckResult {
	return &CheckResult{
		Success:       false,
		Message:       message,
		Details:       details,
		TotalDuration: sumDurations(details),
	}
}

func sumDurations(details []CheckDetail) *time.Duration {
	var total time.Duration
	var present bool
	for _, d := range details {
		if d.Duration != nil {
			total += *d.Duration
			present = true
		}
	}
	if !present {
		return nil
	}
	return &total
}
