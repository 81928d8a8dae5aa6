package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/benchplot/internal/config"
	"github.com/roach88/benchplot/internal/testutil"
)

// smallConfig writes a config that keeps rendered charts small, plus extra YAML.
func smallConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benchplot.yaml")
	content := "chart:\n  width: 4\n  height: 3\n  dpi: 40\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// fullTree writes every configured combination with distinct medians.
func fullTree(t *testing.T) *testutil.Tree {
	t.Helper()
	cfg := config.Default()
	tree := testutil.NewTree(t)
	tree.AddMatrix(cfg.Marker, cfg.MeasurementTypes, cfg.Implementations, cfg.Categories,
		func(mt, impl, cat string) float64 { return float64(len(mt)*1000 + len(impl)*100 + len(cat)) })
	return tree
}

// execute runs cmd with args and returns stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
