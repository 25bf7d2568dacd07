package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavealign/config"
	"github.com/katalvlaran/wavealign/sequence"
)

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestAlign_Literals(t *testing.T) {
	out, _, err := run(t, "align", "--seq-x", "GATTACA", "--seq-y", "GCATGCU", "--gap", "-1", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 0\nG-ATTACA\nGCA-TGCU\n")
	assert.Contains(t, out, "Workers: 3 (diagonals)")
}

func TestAlign_PrintMatrix(t *testing.T) {
	out, _, err := run(t, "align", "--seq-x", "A", "--seq-y", "AC", "--print-matrix", "--strategy", "rows")
	require.NoError(t, err)
	assert.Contains(t, out, "  0  -2  -4 \n -2   1  -1 \n")
	assert.Contains(t, out, "Score: -1\nA-\nAC\n")
}

func TestAlign_FilesFromGenerate(t *testing.T) {
	dir := t.TempDir()
	px, py := filepath.Join(dir, "x.fa"), filepath.Join(dir, "y.fa")

	_, _, err := run(t, "generate", "--length", "150", "--seed", "5", "--name", "x", "--out", px)
	require.NoError(t, err)
	_, _, err = run(t, "generate", "--length", "120", "--seed", "6", "--out", py)
	require.NoError(t, err)

	x, err := sequence.ReadFile(px)
	require.NoError(t, err)
	assert.Equal(t, "x", x.Name())
	assert.Equal(t, 150, x.Len())

	out, _, err := run(t, "align", "--x", px, "--y", py, "--strategy", "cursor", "--workers", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Workers: 8 (cursor)")
}

func TestGenerate_Stdout(t *testing.T) {
	out, _, err := run(t, "generate", "--length", "12", "--alphabet", "AB", "--seed", "3")
	require.NoError(t, err)
	assert.Len(t, out, 13)
	for _, c := range out[:12] {
		assert.Contains(t, "AB", string(c))
	}

	_, _, err = run(t, "generate")
	assert.Error(t, err, "--length is required")
}

func TestAlign_ConfigFileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavealign.yaml")
	doc := "scoring:\n  gap: -1\nworkers: 2\nstrategy: rows\nlog:\n  level: debug\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, logs, err := run(t, "--config", path, "align", "--seq-x", "GATTACA", "--seq-y", "GCATGCU")
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Workers: 2 (rows)")
	assert.Contains(t, logs, `"msg":"alignment complete"`)

	out, _, err = run(t, "--config", path, "align", "--seq-x", "GATTACA", "--seq-y", "GCATGCU", "--gap", "-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Score: -1")
}

func TestAlign_InvalidInput(t *testing.T) {
	_, _, err := run(t, "align", "--seq-x", "AC")
	assert.ErrorIs(t, err, errInput)

	_, _, err = run(t, "align", "--seq-x", "AC", "--x", "a.fa", "--seq-y", "AC")
	assert.ErrorIs(t, err, errInput)

	_, _, err = run(t, "align", "--seq-x", "AC", "--seq-y", "AC", "--workers", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = run(t, "align", "--seq-x", "AC", "--seq-y", "AC", "--strategy", "spiral")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = run(t, "--log-format", "xml", "version")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestAlign_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.prom")

	_, _, err := run(t, "align", "--seq-x", "ACGT", "--seq-y", "ACGT", "--metrics-file", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wavealign_align_last_score 4")

	_, _, err = run(t, "align", "--seq-x", "ACGT", "--seq-y", "ACGT", "--workers", "-1", "--metrics-file", path)
	require.Error(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `wavealign_align_failures_total{kind="config"} 1`)
}

func TestAlign_Trace(t *testing.T) {
	_, spans, err := run(t, "align", "--seq-x", "GATTACA", "--seq-y", "GCATGCU", "--trace", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, spans, "nw.Align")
	assert.Contains(t, spans, "nw.run_id")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wavealign dev")
}
