package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type cliTestEnv struct {
	home       string
	stateDir   string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	for _, key := range []string{"SMALIRENAME_LOG_LEVEL", "SMALIRENAME_LOG_FORMAT", "SMALIRENAME_STATE_DIR"} {
		t.Setenv(key, "")
	}

	env := &cliTestEnv{
		home:       home,
		stateDir:   filepath.Join(home, "state"),
		configPath: filepath.Join(home, "smalirename.toml"),
	}
	content := fmt.Sprintf("[paths]\nstate_dir = %q\n\n[logging]\nlevel = \"info\"\n", env.stateDir)
	require.NoError(t, os.WriteFile(env.configPath, []byte(content), 0o644))
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
