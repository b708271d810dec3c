package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/orient/internal/logging"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/models"
	"github.com/taigrr/orient/pkg/orientation"
)

var goldenArgs = []string{
	"--up", "-16,-15,-975",
	"--up-front", "-185,300,-910",
	"--vector", "-500,600,400",
}

// execute runs the command tree with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)

	root := newRootCmd(logging.NewSlogManager())
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFrameCmd(t *testing.T) {
	out, _, err := execute(t, "", "frame", "--up", "0,0,1", "--up-front", "0,1,1")
	require.NoError(t, err)

	assert.Contains(t, out, "FRAME")
	assert.Contains(t, out, "UP     (0.0000, 0.0000, 1.0000)")
	assert.Contains(t, out, "FRONT  (0.0000, 1.0000, 0.0000)")
	assert.Contains(t, out, "RIGHT  (1.0000, 0.0000, 0.0000)")
}

func TestFrameCmd_JSON(t *testing.T) {
	out, _, err := execute(t, "", "frame", "--up", "0,0,1", "--up-front", "0,1,1", "--format", "json")
	require.NoError(t, err)

	var f orientation.Frame
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	assert.True(t, f.Front.ApproxEqual(math3d.V3(0, 1, 0), 1e-9), "front = %v", f.Front)
}

func TestFrameCmd_MissingFlag(t *testing.T) {
	_, _, err := execute(t, "", "frame", "--up", "0,0,1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "up-front")
}

func TestDecomposeCmd(t *testing.T) {
	out, _, err := execute(t, "", append([]string{"decompose"}, goldenArgs...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "MAGNITUDES")
	assert.Contains(t, out, "-400.9242  DOWN")
	assert.Contains(t, out, "763.4332  FRONT")
	assert.Contains(t, out, "162.5717  RIGHT")
}

func TestDecomposeCmd_JSON(t *testing.T) {
	out, _, err := execute(t, "", append([]string{"decompose", "--format", "json"}, goldenArgs...)...)
	require.NoError(t, err)

	var res orientation.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, -400.9242, res.Magnitudes.Up, 1e-3)
	assert.InDelta(t, 763.4332, res.Magnitudes.Front, 1e-3)
	assert.InDelta(t, 162.5717, res.Magnitudes.Right, 1e-3)
}

func TestDecomposeCmd_ConfigFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orient.cfg.json"), []byte(`{"output": {"format": "json"}}`), 0644))

	out, _, err := execute(t, "", append([]string{"decompose", "--config", dir}, goldenArgs...)...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), "want JSON output, got %q", out)

	// flag beats config file
	out, _, err = execute(t, "", append([]string{"decompose", "--config", dir, "--format", "text"}, goldenArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "MAGNITUDES")
}

func TestDecomposeCmd_Degenerate(t *testing.T) {
	_, _, err := execute(t, "", "decompose", "--up", "0,0,1", "--up-front", "0,0,5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, math3d.ErrDegenerateGeometry), "err = %v", err)
}

func TestDecomposeCmd_BadVector(t *testing.T) {
	_, _, err := execute(t, "", "decompose", "--up", "0,0,1", "--up-front", "0,1,1", "--vector", "1,2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--vector")
}

func TestDecomposeCmd_BadFormat(t *testing.T) {
	_, _, err := execute(t, "", append([]string{"decompose", "--format", "xml"}, goldenArgs...)...)
	require.Error(t, err)
}

const batchInput = `upX,upY,upZ,upFrontX,upFrontY,upFrontZ,vX,vY,vZ
-16,-15,-975,-185,300,-910,-500,600,400
0,0,0,0,1,1,1,2,3
0,0,1,0,1
0,0,1,0,1,1,0,0,-9.81
`

func TestBatchCmd(t *testing.T) {
	out, stderr, err := execute(t, batchInput, "batch", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 4 rows failed")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "2,-400.92"), "row = %q", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "5,-9.81"), "row = %q", lines[2])

	assert.Contains(t, stderr, "line=3")
	assert.Contains(t, stderr, "line=4")
	assert.Contains(t, stderr, "level=WARN")
}

func TestBatchCmd_KeepGoing(t *testing.T) {
	_, _, err := execute(t, batchInput, "batch", "--keep-going")
	require.NoError(t, err)
}

func TestBatchCmd_MalformedFirstRow(t *testing.T) {
	out, stderr, err := execute(t, "0,0,1,0,1,1,a,0,0\n0,0,1,0,1,1,1,2,3\n", "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 rows failed")
	assert.Contains(t, stderr, "line=1")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2,"), "row = %q", lines[1])
}

func TestBatchCmd_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,0,1,0,1,1,0,1,0\n"), 0644))

	out, _, err := execute(t, "", "batch", "--format", "json", path)
	require.NoError(t, err)

	var line struct {
		Line   int                `json:"line"`
		Result orientation.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &line))
	assert.Equal(t, 1, line.Line)
	assert.InDelta(t, 1.0, line.Result.Magnitudes.Front, 1e-9)
}

func TestBatchCmd_MissingFile(t *testing.T) {
	_, _, err := execute(t, "", "batch", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open input")
}

func TestSnapshotCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	args := append([]string{"snapshot", "--out", path, "--width", "120", "--height", "90"}, goldenArgs...)
	_, _, err := execute(t, "", args...)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestSnapshotCmd_BadBackground(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	args := append([]string{"snapshot", "--out", path, "--background", "1,2"}, goldenArgs...)
	_, _, err := execute(t, "", args...)
	require.Error(t, err)
}

func TestSnapshotCmd_BadSize(t *testing.T) {
	for _, size := range [][2]string{{"0", "90"}, {"120", "-1"}, {"100000", "100000"}, {"8193", "10"}} {
		viper.Reset()
		path := filepath.Join(t.TempDir(), "frame.png")
		args := append([]string{"snapshot", "--out", path, "--width", size[0], "--height", size[1]}, goldenArgs...)
		_, _, err := execute(t, "", args...)
		require.Error(t, err, "size %sx%s", size[0], size[1])
		assert.Contains(t, err.Error(), "invalid image size")
		assert.NoFileExists(t, path)
	}
}

func TestExportCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.glb")
	args := append([]string{"export", "--out", path, "--scale", "2"}, goldenArgs...)
	_, _, err := execute(t, "", args...)
	require.NoError(t, err)

	mesh, err := models.LoadGLB(path)
	require.NoError(t, err)
	require.Len(t, mesh.Parts, 4)
	assert.NotNil(t, mesh.Part("VECTOR"))

	up := mesh.Part("UP")
	require.NotNil(t, up)
	assert.InDelta(t, 2.0, mesh.Vertices[up.Segments[0][1]].Len(), 1e-5)
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("30, 30,40")
	require.NoError(t, err)
	assert.Equal(t, uint8(40), c.B)

	for _, bad := range []string{"", "1,2", "1,2,256", "a,b,c"} {
		_, err := parseColor(bad)
		assert.Error(t, err, bad)
	}
}
