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

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/driftdb/preflight/checker"
	"github.com/driftdb/preflight/checker/roles"
	"github.com/driftdb/preflight/config"
	"github.com/driftdb/preflight/report"
	"github.com/urfave/cli"
)

// GetCmds returns one subcommand per DriftDB role.
func GetCmds() []cli.Command {
	return []cli.Command{
		NewCmdCoordinator(),
		NewCmdDatanode(),
		NewCmdMetaservice(),
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:     "config,c",
			Usage:    "path to the role configuration file",
			Required: true,
		},
		cli.StringFlag{
			Name:  "output,o",
			Usage: "output format: human or json",
			Value: "human",
		},
	}
}

// NewCmdCoordinator checks a coordinator deployment.
func NewCmdCoordinator() cli.Command {
	return cli.Command{
		Name:  "coordinator",
		Usage: "check coordinator external dependencies",
		Flags: commonFlags(),
		Action: func(c *cli.Context) error {
			conf, err := config.LoadCoordinatorConfig(c.String("config"))
			if err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
			return run(c, roles.NewCoordinatorChecker(conf))
		},
	}
}

// NewCmdDatanode checks a datanode deployment.
func NewCmdDatanode() cli.Command {
	flags := append(commonFlags(), cli.BoolFlag{
		Name:  "include-performance",
		Usage: "also run storage latency/throughput and concurrency benchmarks",
	})
	return cli.Command{
		Name:  "datanode",
		Usage: "check datanode external dependencies",
		Flags: flags,
		Action: func(c *cli.Context) error {
			conf, err := config.LoadDatanodeConfig(c.String("config"))
			if err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
			return run(c, roles.NewDatanodeChecker(conf, c.Bool("include-performance")))
		},
	}
}

// NewCmdMetaservice checks a metaservice deployment.
func NewCmdMetaservice() cli.Command {
	return cli.Command{
		Name:  "metaservice",
		Usage: "check metaservice external dependencies",
		Flags: commonFlags(),
		Action: func(c *cli.Context) error {
			conf, err := config.LoadMetaserviceConfig(c.String("config"))
			if err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
			return run(c, roles.NewMetaserviceChecker(conf))
		},
	}
}

func run(c *cli.Context, comp checker.ComponentChecker) error {
	result := comp.Check(context.Background())

	switch c.String("output") {
	case "json":
		data, err := report.ToJSON(result, comp.ComponentName(), c.String("config"))
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("serialize result: %s", err), 1)
		}
		fmt.Println(string(data))
	default:
		report.WriteHumanReadable(os.Stdout, result, comp.ComponentName(), c.String("config"))
	}

	// Callers map a failed run to a non-zero exit code.
	if !result.Success {
		return cli.NewExitError("", 1)
	}
	return nil
}
