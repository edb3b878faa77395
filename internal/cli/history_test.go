package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindcheck/internal/store"
	"github.com/roach88/bindcheck/internal/testutil"
)

func TestHistory_RequiresDB(t *testing.T) {
	_, _, err := execute(t, "history")
	require.Error(t, err)

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--db")
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	stdout, _, err := execute(t, "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No runs recorded.")
}

func TestHistory_RecordsRunAndCheck(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	_, _, err := execute(t, "--db", db, "run")
	require.NoError(t, err)

	// Run IDs are pinned in tests, so the check needs its own generator.
	opts := &RootOptions{RunIDs: testutil.NewFixedRunID("check-run")}
	cmd := NewRootCommandWithOptions(opts)
	cmd.SetOut(&strings.Builder{})
	cmd.SetArgs([]string{"--db", db, "check", "--break", "init"})
	require.Error(t, cmd.Execute())

	stdout, _, err := execute(t, "--db", db, "history")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], testutil.DefaultRunID)
	assert.Contains(t, lines[1], "0/4")
	assert.Contains(t, lines[2], "check-run")
	assert.Contains(t, lines[2], "init")
	assert.Contains(t, lines[2], "1/4")
}

func TestHistory_RecordsFaultedRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	_, _, err := execute(t, "--db", db, "run", "--break", "ownership")
	require.Error(t, err)

	stdout, _, err := execute(t, "--format", "json", "--db", db, "history", testutil.DefaultRunID)
	require.NoError(t, err)

	var resp struct {
		Data store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))

	assert.Equal(t, "run", resp.Data.Command)
	assert.Equal(t, []string{"ownership"}, resp.Data.Broken)
	require.Len(t, resp.Data.Steps, 3, "the program stops at the faulting lesson")
	require.NotNil(t, resp.Data.Steps[2].Fault)
	assert.Equal(t, "USE_AFTER_MOVE", string(resp.Data.Steps[2].Fault.Code))
}

func TestHistory_ShowRunText(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	_, _, err := execute(t, "--db", db, "run")
	require.NoError(t, err)

	stdout, _, err := execute(t, "--db", db, "history", testutil.DefaultRunID)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Run 1 ("+testutil.DefaultRunID+") run")
	assert.Contains(t, stdout, "✓ ownership (fixed)")
	assert.Contains(t, stdout, "  | v2= [1, 2, 3]")
}

func TestHistory_UnknownRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	_, stderr, err := execute(t, "--db", db, "history", "nope")
	require.Error(t, err)

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E_RUN_NOT_FOUND]")
}
