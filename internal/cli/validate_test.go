package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/benchplot/internal/testutil"
)

func TestValidate_Valid(t *testing.T) {
	tree := fullTree(t)

	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), tree.Root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ All result directories valid (32 record(s))")
}

func TestValidate_ValidJSON(t *testing.T) {
	tree := fullTree(t)

	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), tree.Root)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Add("cmp_eval_fee", 1)
	tree.AddDir("cmp_eval_fee_simple")
	tree.AddRaw("cmp_eval_fee_var", `{"median": {"point_estimate": -3}}`)
	tree.Add("cmp_eval_meval_simple", 2)

	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), tree.Root)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "3 problem(s)")

	assert.Contains(t, stdout, "✗ Validation failed")
	assert.Contains(t, stdout, "E201")
	assert.Contains(t, stdout, "E301")
	assert.Contains(t, stdout, "E303")
	assert.Contains(t, stdout, "E303: "+filepath.Join(tree.Root, "cmp_eval_fee_var", "new", "estimates.json"))
	assert.NotContains(t, stdout, "estimates.cue")
}

func TestValidate_ProblemsJSON(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Add("cmp_eval_fee", 1)

	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), tree.Root)
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Problems, 1)
	assert.Equal(t, "E201", resp.Error.Code)
}

func TestValidate_UnknownTagsAreWarnings(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Add("cmp_compile_fee_simple", 1)

	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), tree.Root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "warning")
	assert.Contains(t, stdout, "E402")
}

func TestValidate_MissingRootIsValid(t *testing.T) {
	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "/nonexistent/criterion")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(0 record(s))")
}
