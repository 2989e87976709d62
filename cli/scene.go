package cli

import (
	"encoding/json"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"go.viam.com/collide/config"
	"go.viam.com/collide/logging"
	"go.viam.com/collide/spatialmath"
)

// newLogger logs to the app's error writer so that results on the writer stay clean.
func newLogger(c *cli.Context) (logging.Logger, error) {
	logger := logging.NewBlankLogger("collide")
	// batch workers log concurrently
	logger.AddAppender(logging.NewWriterAppender(zapcore.Lock(zapcore.AddSync(c.App.ErrWriter))))
	if c.Bool(debugFlag) {
		return logger, nil
	}
	level, err := logging.LevelFromString(c.String(logLevelFlag))
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	return logger, nil
}

func readScene(c *cli.Context, logger logging.Logger) (*config.Config, error) {
	path := c.String(configFlag)
	if path == "" {
		return nil, errors.Errorf("a scene file is required, pass it with --%s", configFlag)
	}
	return config.Read(path, logger)
}

// sceneCommand reads the scene and runs the planar or spatial version of a command on it.
func sceneCommand(
	c *cli.Context,
	planar func(*cli.Context, *config.Scene[r2.Point], logging.Logger) error,
	spatial func(*cli.Context, *config.Scene[r3.Vector], logging.Logger) error,
) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	cfg, err := readScene(c, logger)
	if err != nil {
		return err
	}
	switch cfg.Dimension {
	case 2:
		scene, err := config.Build[r2.Point](cfg)
		if err != nil {
			return err
		}
		return planar(c, scene, logger)
	case 3:
		scene, err := config.Build[r3.Vector](cfg)
		if err != nil {
			return err
		}
		return spatial(c, scene, logger)
	default:
		return errors.Errorf("unsupported scene dimension %d", cfg.Dimension)
	}
}

// parseVector parses comma separated coordinates such as "1,2.5,-3".
func parseVector[V spatialmath.Vector[V]](s string) (V, error) {
	fields := strings.Split(s, ",")
	coords := make([]float64, 0, len(fields))
	for _, f := range fields {
		x, err := cast.ToFloat64E(strings.TrimSpace(f))
		if err != nil {
			return spatialmath.Zero[V](), errors.Wrapf(err, "bad coordinate %q", f)
		}
		coords = append(coords, x)
	}
	return spatialmath.VectorFromSlice[V](coords)
}

// SchemaAction prints the JSON schema of scene files.
func SchemaAction(c *cli.Context) error {
	out, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}
