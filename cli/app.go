// Package cli contains the collide command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	configFlag     = "config"
	debugFlag      = "debug"
	logLevelFlag   = "log-level"
	parallelFlag   = "parallel"
	marginFlag     = "margin"
	originFlag     = "origin"
	dirFlag        = "dir"
	solidFlag      = "solid"
	iterationsFlag = "iterations"
)

var app = &cli.App{
	Name:            "collide",
	Usage:           "run proximity, distance and ray queries on a scene",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "load the scene from `FILE` (.json, .yaml or .yml)",
		},
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:  logLevelFlag,
			Value: "info",
			Usage: "log `LEVEL` (debug, info, warn or error), overridden by --debug",
		},
		&cli.IntFlag{
			Name:  parallelFlag,
			Usage: "number of pairs queried at once, 0 for one per CPU",
		},
	},
	Commands: []*cli.Command{
		{
			Name:  "proximity",
			Usage: "classify every pair of objects as intersecting, within margin or disjoint",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:  marginFlag,
					Usage: "margin to use instead of the scene margin",
				},
			},
			Action: ProximityAction,
		},
		{
			Name:   "distance",
			Usage:  "compute the distance between every pair of objects",
			Action: DistanceAction,
		},
		{
			Name:  "raycast",
			Usage: "cast a ray against every object",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     originFlag,
					Usage:    "ray origin as comma separated coordinates",
					Required: true,
				},
				&cli.StringFlag{
					Name:     dirFlag,
					Usage:    "ray direction as comma separated coordinates",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  solidFlag,
					Usage: "treat shapes as solid, so rays starting inside hit at time 0",
				},
			},
			Action: RaycastAction,
		},
		{
			Name:  "bench",
			Usage: "time repeated distance queries over every pair",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  iterationsFlag,
					Value: 100,
					Usage: "number of timed runs",
				},
			},
			Action: BenchAction,
		},
		{
			Name:   "schema",
			Usage:  "print the JSON schema of scene files",
			Action: SchemaAction,
		},
		{
			Name:   "version",
			Usage:  "print version info for this program",
			Action: VersionAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
