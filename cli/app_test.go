package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/fatih/color"
	"go.viam.com/test"
)

const testScene = `{
	"dimension": 2,
	"margin": 0.5,
	"objects": [
		{"name": "left", "geometry": {"type": "ball", "attributes": {"radius": 1}}},
		{"name": "right", "pose": {"translation": [5, 0]}, "geometry": {"type": "ball", "attributes": {"radius": 1}}},
		{"name": "wall", "pose": {"translation": [0, 10]}, "geometry": {"type": "cuboid", "attributes": {"half_extents": [20, 1]}}}
	]
}`

func writeScene(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"collide"}, args...))
	return out.String(), errOut.String(), err
}

func TestDistanceCommand(t *testing.T) {
	path := writeScene(t, "scene.json", testScene)
	out, _, err := runApp(t, "--config", path, "distance")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "left/right")
	test.That(t, out, test.ShouldContainSubstring, "3.0000")
	test.That(t, out, test.ShouldContainSubstring, "right/wall")
}

func TestProximityCommand(t *testing.T) {
	path := writeScene(t, "scene.json", testScene)

	out, _, err := runApp(t, "-c", path, "proximity")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "disjoint")
	test.That(t, out, test.ShouldNotContainSubstring, "within_margin")

	out, _, err = runApp(t, "-c", path, "proximity", "--margin", "5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "within_margin")

	_, _, err = runApp(t, "-c", path, "proximity", "--margin", "-1")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRaycastCommand(t *testing.T) {
	path := writeScene(t, "scene.json", testScene)

	out, _, err := runApp(t, "-c", path, "raycast", "--origin", "-10,0", "--dir", "1,0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "first hit: left at 9.0000")

	out, _, err = runApp(t, "-c", path, "raycast", "--origin", "-10,-5", "--dir", "-1,0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "no hit")

	out, _, err = runApp(t, "-c", path, "raycast", "--origin", "0,0", "--dir", "1,0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "first hit: left at 1.0000")

	out, _, err = runApp(t, "-c", path, "raycast", "--origin", "0,0", "--dir", "1,0", "--solid")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "first hit: left at 0.0000")

	_, _, err = runApp(t, "-c", path, "raycast", "--origin", "0,0,0", "--dir", "1,0")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = runApp(t, "-c", path, "raycast", "--origin", "0,x", "--dir", "1,0")
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = runApp(t, "-c", path, "raycast", "--origin", "0,0", "--dir", "0,0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBenchCommand(t *testing.T) {
	path := writeScene(t, "scene.json", testScene)
	out, _, err := runApp(t, "-c", path, "--parallel", "2", "bench", "--iterations", "3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "ITERATIONS")
	test.That(t, out, test.ShouldContainSubstring, "P95")

	prev := benchClock
	defer func() { benchClock = prev }()
	benchClock = clock.NewMock()
	out, _, err = runApp(t, "-c", path, "bench", "--iterations", "5")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "| 0.0 ")

	_, _, err = runApp(t, "-c", path, "bench", "--iterations", "0")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSpatialScene(t *testing.T) {
	path := writeScene(t, "scene.yaml", `
dimension: 3
objects:
  - name: a
    geometry: {type: ball, attributes: {radius: 1}}
  - name: b
    pose: {translation: [0, 0, 4]}
    geometry: {type: capsule, attributes: {half_height: 1, radius: 0.5}}
`)
	out, _, err := runApp(t, "-c", path, "distance")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "a/b")
	test.That(t, out, test.ShouldContainSubstring, "2.5000")
}

func TestSceneErrors(t *testing.T) {
	_, _, err := runApp(t, "distance")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "--config")

	_, _, err = runApp(t, "-c", filepath.Join(t.TempDir(), "missing.json"), "distance")
	test.That(t, err, test.ShouldNotBeNil)

	single := writeScene(t, "single.json", `{"dimension": 2, "objects": [{"name": "x", "geometry": {"type": "ball", "attributes": {"radius": 1}}}]}`)
	out, errOut, err := runApp(t, "-c", single, "distance")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldBeEmpty)
	test.That(t, errOut, test.ShouldContainSubstring, "fewer than two objects")
}

func TestLogging(t *testing.T) {
	path := writeScene(t, "scene.json", testScene)

	_, errOut, err := runApp(t, "-c", path, "--debug", "--parallel", "1", "distance")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "batch done")

	_, errOut, err = runApp(t, "-c", path, "--log-level", "warn", "distance")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldBeEmpty)

	_, _, err = runApp(t, "-c", path, "--log-level", "loud", "distance")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"objects"`)
	test.That(t, out, test.ShouldContainSubstring, `"angle_deg"`)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runApp(t, "version")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "Version")
}
