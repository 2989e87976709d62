package cli

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/collide/config"
	"go.viam.com/collide/logging"
	"go.viam.com/collide/query"
	"go.viam.com/collide/spatialmath"
)

// BenchAction times repeated distance queries over every pair of scene objects.
func BenchAction(c *cli.Context) error {
	return sceneCommand(c, runBench, runBench)
}

// benchClock times bench runs.
var benchClock = clock.New()

// timingSummary holds run times in microseconds.
type timingSummary struct {
	mean, median, p95, max float64
}

func summarize(samples []float64) (timingSummary, error) {
	var s timingSummary
	var errs, err error
	s.mean, err = stats.Mean(samples)
	errs = multierr.Append(errs, err)
	s.median, err = stats.Median(samples)
	errs = multierr.Append(errs, err)
	s.p95, err = stats.PercentileNearestRank(samples, 95)
	errs = multierr.Append(errs, err)
	s.max, err = stats.Max(samples)
	errs = multierr.Append(errs, err)
	return s, errs
}

func runBench[V spatialmath.Vector[V]](c *cli.Context, scene *config.Scene[V], logger logging.Logger) error {
	iterations := c.Int(iterationsFlag)
	if iterations <= 0 {
		return errors.Errorf("--%s must be positive, got %d", iterationsFlag, iterations)
	}
	pairs := scene.Pairs()
	if len(pairs) == 0 {
		warningf(c.App.ErrWriter, "scene has fewer than two objects")
		return nil
	}

	batch := query.NewBatch[V](logger, c.Int(parallelFlag))
	samples := make([]float64, 0, iterations)
	for range iterations {
		start := benchClock.Now()
		if _, err := batch.Distance(c.Context, pairs); err != nil {
			return err
		}
		samples = append(samples, float64(benchClock.Since(start))/float64(time.Microsecond))
	}
	summary, err := summarize(samples)
	if err != nil {
		return err
	}
	logger.Debugw("bench done", "pairs", len(pairs), "iterations", iterations)

	us := func(x float64) string { return fmt.Sprintf("%.1f", x) }
	renderTable(c.App.Writer,
		table.Row{"Pairs", "Iterations", "Mean (us)", "Median (us)", "P95 (us)", "Max (us)"},
		[]table.Row{{len(pairs), iterations, us(summary.mean), us(summary.median), us(summary.p95), us(summary.max)}},
	)
	return nil
}

// VersionAction prints the version of the collide module and its VCS revision.
func VersionAction(c *cli.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("error reading build info")
	}
	if c.Bool(debugFlag) {
		printf(c.App.Writer, "%s", info.String())
	}
	version := "?"
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 8 {
			version = setting.Value[:8]
		}
	}
	appVersion := info.Main.Version
	if appVersion == "" || appVersion == "(devel)" {
		appVersion = "(dev)"
	}
	printf(c.App.Writer, "Version %s Git=%s", appVersion, version)
	return nil
}
