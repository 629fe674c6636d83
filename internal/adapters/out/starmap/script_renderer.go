package starmap

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
)

const (
	scriptName    = "starmap.py"
	outputName    = "starmap.svg"
	outputEnvName = "STARMAP_OUTPUT"
)

var _ ports.ChartRenderer = (*ScriptRenderer)(nil)

// CommandRunner runs name with args in dir and extra environment, returning
// combined output.
type CommandRunner func(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error)

// ExecRunner runs the command as a subprocess.
func ExecRunner(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	return cmd.CombinedOutput()
}

// ScriptRenderer runs the star chart script locally. Each render writes to
// its own temporary file, so concurrent renders do not collide.
type ScriptRenderer struct {
	dir    string
	python string
	run    CommandRunner
}

// NewScriptRenderer creates a renderer for the script in dir. A nil run
// means ExecRunner.
func NewScriptRenderer(dir, python string, run CommandRunner) *ScriptRenderer {
	if python == "" {
		python = "python3"
	}
	if run == nil {
		run = ExecRunner
	}
	return &ScriptRenderer{dir: dir, python: python, run: run}
}

func (r *ScriptRenderer) Render(ctx context.Context, req ports.ChartRequest) (artifact.Chart, error) {
	params := paramsFrom(req)

	tmp, err := os.MkdirTemp("", "starmap-*")
	if err != nil {
		return artifact.Chart{}, fmt.Errorf("create chart workspace: %w", err)
	}
	defer os.RemoveAll(tmp)

	output := filepath.Join(tmp, outputName)
	out, err := r.run(ctx, r.dir, []string{outputEnvName + "=" + output}, r.python,
		filepath.Join(r.dir, scriptName),
		"-coord", params.coordFlag(),
		"-time", params.Time,
		"-date", params.Date,
		"-utc", params.utcFlag(),
		"-constellation", strconv.FormatBool(params.Constellation),
	)
	if err != nil {
		return artifact.Chart{}, fmt.Errorf("%s failed: %w: %s", scriptName, err, out)
	}

	svg, err := os.ReadFile(output)
	if err != nil {
		return artifact.Chart{}, fmt.Errorf("read chart: %w", err)
	}
	if len(svg) == 0 {
		return artifact.Chart{}, ErrEmptyChart
	}

	return params.chart(svg), nil
}
