package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smalirename/internal/faults"
	"smalirename/internal/mapping"
	"smalirename/internal/testsupport"
	"smalirename/internal/workflow"
)

const testManifest = `<activity android:name="p.a€b$c!d"/>`

func newTestTree(t *testing.T) string {
	t.Helper()
	return testsupport.NewApkTree(t, testManifest, map[string]string{
		"p/a€b.smali":     ".class Lp/a€b;\n",
		"p/a€b$c!d.smali": ".class Lp/a€b$c!d;\n",
	})
}

func TestRunCommandRenamesTree(t *testing.T) {
	env := setupCLITestEnv(t)
	root := newTestTree(t)

	out, stderr, err := runCLI(t, []string{"run", root}, env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Mapping size: 2")
	assert.Contains(t, out, "Files renamed: 2")
	assert.Contains(t, out, "Job done!")
	assert.Contains(t, stderr, "run complete")

	assert.Equal(t, map[string]string{
		"AndroidManifest.xml":         `<activity android:name="p.Class0$Class1"/>`,
		"smali/p/Class0.smali":        ".class Lp/Class0;\n",
		"smali/p/Class0$Class1.smali": ".class Lp/Class0$Class1;\n",
	}, testsupport.ReadTree(t, root))
}

func TestRunCommandJSONReport(t *testing.T) {
	env := setupCLITestEnv(t)
	root := newTestTree(t)

	out, _, err := runCLI(t, []string{"run", "--json", root}, env.configPath)
	require.NoError(t, err)

	var report workflow.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, root, report.Root)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, []mapping.Entry{{Old: "a€b", New: "Class0"}, {Old: "c!d", New: "Class1"}}, report.Mapping)
	assert.Equal(t, 3, report.FilesRewritten)
}

func TestRunCommandDryRunShowsMapping(t *testing.T) {
	env := setupCLITestEnv(t)
	root := newTestTree(t)
	before := testsupport.ReadTree(t, root)

	out, _, err := runCLI(t, []string{"run", "--dry-run", "--show-mapping", root}, env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Renames planned: 2")
	assert.Contains(t, out, "Class0$Class1.smali")
	assert.Contains(t, out, `"c!d"`)
	assert.Contains(t, out, "Dry run complete")
	assert.Equal(t, before, testsupport.ReadTree(t, root))
}

func TestRunCommandCleanTree(t *testing.T) {
	env := setupCLITestEnv(t)
	root := testsupport.NewApkTree(t, "", map[string]string{"p/Main.smali": ""})

	out, _, err := runCLI(t, []string{"run", root}, env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Mapping size: 0")
	assert.Contains(t, out, "nothing to replace")
}

func TestRunCommandExitCodes(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"run", filepath.Join(env.home, "missing")}, env.configPath)
	require.Error(t, err)
	assert.Equal(t, faults.ExitPrecondition, faults.ExitCode(err))

	root := testsupport.NewApkTree(t, "", map[string]string{"p/readme.md": ""})
	_, _, err = runCLI(t, []string{"run", root}, env.configPath)
	require.Error(t, err)
	assert.Equal(t, faults.ExitStructural, faults.ExitCode(err))

	root = testsupport.NewApkTree(t, "", map[string]string{"Class0.smali": "", "x-y.smali": ""})
	_, _, err = runCLI(t, []string{"run", root}, env.configPath)
	require.Error(t, err)
	assert.Equal(t, faults.ExitConflict, faults.ExitCode(err))
}

func TestRunCommandRequiresRoot(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"run"}, env.configPath)
	require.Error(t, err)
}

func TestLogLevelFlagRejectsUnknownLevel(t *testing.T) {
	env := setupCLITestEnv(t)
	root := newTestTree(t)

	_, _, err := runCLI(t, []string{"--log-level", "verbose", "run", root}, env.configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestLogFormatFlagSwitchesToJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	root := newTestTree(t)

	_, stderr, err := runCLI(t, []string{"--log-format", "json", "run", root}, env.configPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"run complete"`)
}

func TestCheckCommandReportsPendingRenames(t *testing.T) {
	env := setupCLITestEnv(t)
	root := newTestTree(t)
	before := testsupport.ReadTree(t, root)

	out, _, err := runCLI(t, []string{"check", root}, env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "== Layout ==")
	assert.Contains(t, out, "[OK]")
	assert.Contains(t, out, "[WARN] 2 identifiers, 2 files to rename")
	assert.Equal(t, before, testsupport.ReadTree(t, root))
}

func TestCheckCommandReportsLayoutFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "smali"), 0o755))

	out, _, err := runCLI(t, []string{"check", root}, env.configPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrPrecondition)
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "does not exist")
}

func TestCheckCommandReportsStructuralViolation(t *testing.T) {
	env := setupCLITestEnv(t)
	root := testsupport.NewApkTree(t, "", map[string]string{"bad-dir/A.smali": ""})

	out, _, err := runCLI(t, []string{"check", root}, env.configPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrStructural)
	assert.Contains(t, out, "folder with invalid name")
}

func TestRunCommandWritesLogFile(t *testing.T) {
	env := setupCLITestEnv(t)
	logDir := filepath.Join(env.home, "logs")
	content := "[paths]\nstate_dir = \"" + env.stateDir + "\"\nlog_dir = \"" + logDir + "\"\n"
	require.NoError(t, os.WriteFile(env.configPath, []byte(content), 0o644))
	root := newTestTree(t)

	_, _, err := runCLI(t, []string{"run", root}, env.configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(logDir, "smalirename.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "run complete")
}
