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

// Package report renders a CheckResult for humans or machines. It consumes
// only the result model's public fields.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/driftdb/preflight/checker"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

type jsonReport struct {
	Component     string           `json:"component"`
	ConfigFile    string           `json:"config_file,omitempty"`
	Timestamp     string           `json:"timestamp"`
	OverallResult string           `json:"overall_result"`
	TotalChecks   int              `json:"total_checks"`
	PassedChecks  int              `json:"passed_checks"`
	FailedChecks  int              `json:"failed_checks"`
	WarningChecks int              `json:"warning_checks"`
	DurationMs    *int64           `json:"total_duration_ms,omitempty"`
	Message       string           `json:"message"`
	Details       []jsonDetail     `json:"details"`
}

type jsonDetail struct {
	Item       string `json:"item"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	DurationMs *int64 `json:"duration_ms,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ToJSON serializes a result with its run metadata.
func ToJSON(result *checker.CheckResult, component, configFile string) ([]byte, error) {
	rep := jsonReport{
		Component:     component,
		ConfigFile:    configFile,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		OverallResult: verdict(result.Success),
		TotalChecks:   len(result.Details),
		DurationMs:    millis(result.TotalDuration),
		Message:       result.Message,
		Details:       make([]jsonDetail, 0, len(result.Details)),
	}
	for _, d := range result.Details {
		switch d.Status {
		case checker.StatusFail:
			rep.FailedChecks++
		case checker.StatusWarning:
			rep.WarningChecks++
		default:
			rep.PassedChecks++
		}
		rep.Details = append(rep.Details, jsonDetail{
			Item:       d.Item,
			Status:     string(d.Status),
			Message:    d.Message,
			DurationMs: millis(d.Duration),
			Suggestion: d.Suggestion,
		})
	}
	return json.MarshalIndent(rep, "", "  ")
}

// WriteHumanReadable prints the run report as a table.
func WriteHumanReadable(w io.Writer, result *checker.CheckResult, component, configFile string) {
	fmt.Fprintf(w, "\n%s\n", color.New(color.Bold, color.FgBlue).Sprint("DriftDB Preflight Report"))
	fmt.Fprintf(w, "%s\n\n", color.BlueString("========================"))
	fmt.Fprintf(w, "%s: %s\n", color.New(color.Bold).Sprint("Component"), component)
	if configFile != "" {
		fmt.Fprintf(w, "%s: %s\n", color.New(color.Bold).Sprint("Configuration"), configFile)
	}
	if result.TotalDuration != nil {
		fmt.Fprintf(w, "%s: %v\n", color.New(color.Bold).Sprint("Total Duration"), *result.TotalDuration)
	}
	fmt.Fprintln(w)

	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true
	for _, d := range result.Details {
		duration := ""
		if d.Duration != nil {
			duration = fmt.Sprintf("(%v)", d.Duration.Round(time.Millisecond))
		}
		table.AddRow(statusText(d.Status), d.Item, duration, d.Message)
		if d.Suggestion != "" {
			table.AddRow("", "", "", color.YellowString("Suggestion: %s", d.Suggestion))
		}
	}
	fmt.Fprintln(w, table)

	fmt.Fprintln(w)
	if result.Success {
		fmt.Fprintf(w, "Overall Result: %s\n\n", color.New(color.Bold, color.FgGreen).Sprint("PASS"))
	} else {
		fmt.Fprintf(w, "Overall Result: %s\n\n", color.New(color.Bold, color.FgRed).Sprint("FAIL"))
	}
}

func statusText(s checker.CheckStatus) string {
	switch s {
	case checker.StatusPass:
		return color.GreenString("[PASS]")
	case checker.StatusFail:
		return color.RedString("[FAIL]")
	default:
		return color.YellowString("[WARN]")
	}
}

func verdict(success bool) string {
	if success {
		return "PASS"
	}
	return "FAIL"
}

func millis(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	ms := d.Milliseconds()
	return &ms
}
