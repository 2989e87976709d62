package cli

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/collide/config"
	"go.viam.com/collide/logging"
	"go.viam.com/collide/query"
	"go.viam.com/collide/spatialmath"
)

// ProximityAction classifies every pair of scene objects.
func ProximityAction(c *cli.Context) error {
	return sceneCommand(c, runProximity, runProximity)
}

func runProximity[V spatialmath.Vector[V]](c *cli.Context, scene *config.Scene[V], logger logging.Logger) error {
	margin := scene.Margin
	if c.IsSet(marginFlag) {
		margin = c.Float64(marginFlag)
	}
	pairs := scene.Pairs()
	if len(pairs) == 0 {
		warningf(c.App.ErrWriter, "scene has fewer than two objects")
		return nil
	}
	results, err := query.NewBatch[V](logger, c.Int(parallelFlag)).Proximity(c.Context, pairs, margin)
	if err != nil {
		return err
	}
	rows := make([]table.Row, len(pairs))
	for i, p := range pairs {
		rows[i] = table.Row{i + 1, p.Name, colorProximity(results[i])}
	}
	renderTable(c.App.Writer, table.Row{"#", "Pair", "Proximity"}, rows)
	return nil
}

// DistanceAction computes the distance between every pair of scene objects.
func DistanceAction(c *cli.Context) error {
	return sceneCommand(c, runDistance, runDistance)
}

func runDistance[V spatialmath.Vector[V]](c *cli.Context, scene *config.Scene[V], logger logging.Logger) error {
	pairs := scene.Pairs()
	if len(pairs) == 0 {
		warningf(c.App.ErrWriter, "scene has fewer than two objects")
		return nil
	}
	results, err := query.NewBatch[V](logger, c.Int(parallelFlag)).Distance(c.Context, pairs)
	if err != nil {
		return err
	}
	rows := make([]table.Row, len(pairs))
	for i, p := range pairs {
		rows[i] = table.Row{i + 1, p.Name, fmt.Sprintf("%.4f", results[i])}
	}
	renderTable(c.App.Writer, table.Row{"#", "Pair", "Distance"}, rows)
	return nil
}

// RaycastAction casts a ray against every scene object and reports the first hit.
func RaycastAction(c *cli.Context) error {
	return sceneCommand(c, runRaycast, runRaycast)
}

func runRaycast[V spatialmath.Vector[V]](c *cli.Context, scene *config.Scene[V], logger logging.Logger) error {
	origin, err := parseVector[V](c.String(originFlag))
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", originFlag)
	}
	dir, err := parseVector[V](c.String(dirFlag))
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", dirFlag)
	}
	if dir.Norm() == 0 {
		return errors.Errorf("--%s must not be zero", dirFlag)
	}
	ray := spatialmath.NewRay(origin, dir)
	solid := c.Bool(solidFlag)

	first, firstTOI := "", math.Inf(1)
	rows := make([]table.Row, 0, len(scene.Objects))
	for i, obj := range scene.Objects {
		toi, hit, err := query.TOIWithRay(obj.Pose, obj.Shape, ray, solid)
		if err != nil {
			return errors.Wrapf(err, "cannot cast against %q", obj.Name)
		}
		logger.Debugw("raycast", "object", obj.Name, "hit", hit, "toi", toi)
		if !hit {
			rows = append(rows, table.Row{i + 1, obj.Name, "no", "", ""})
			continue
		}
		if toi < firstTOI {
			first, firstTOI = obj.Name, toi
		}
		pt := spatialmath.Coords(ray.PointAt(toi))
		rows = append(rows, table.Row{
			i + 1, obj.Name, "yes", fmt.Sprintf("%.4f", toi), formatCoords(pt[:spatialmath.Dim[V]()]),
		})
	}
	renderTable(c.App.Writer, table.Row{"#", "Object", "Hit", "TOI", "Point"}, rows)
	if first == "" {
		printf(c.App.Writer, "no hit")
		return nil
	}
	printf(c.App.Writer, "first hit: %s at %.4f", first, firstTOI)
	return nil
}
