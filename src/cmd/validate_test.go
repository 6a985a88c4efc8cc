// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wrangle-dev/wrangle/src/pkg/discover"
	"github.com/wrangle-dev/wrangle/src/pkg/runner"
)

func TestCheckTaskFiles(t *testing.T) {
	root := t.TempDir()
	taskDir := filepath.Join(root, "tasks")
	require.NoError(t, os.MkdirAll(taskDir, 0o755))

	write := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(taskDir, name), []byte(content), 0o755))
	}
	write("clean.sh", "# TASK: clean-task, tidy-up\n# DESCRIPTION: tidies the tree\nexit 0\n")
	write("Invoke-Derived.sh", "# DESCRIPTION: has no TASK line\nexit 0\n")
	write("noexit.sh", "# TASK: noexit\n# DESCRIPTION: never exits explicitly\necho done\n")
	write("nodesc.sh", "# TASK: nodesc\nexit 0\n")

	registry, err := discover.Tasks(discover.Options{
		ProjectRoot:   root,
		TaskDirectory: "tasks",
		BuiltIns:      runner.BuiltinTasks(),
	})
	require.NoError(t, err)

	issues := checkTaskFiles(registry)

	// One issue per defect; the aliased clean task is checked once and the
	// built-ins are never checked at all.
	require.Len(t, issues, 3)

	joined := strings.Join(issues, "\n")
	require.Contains(t, joined, "Invoke-Derived.sh")
	require.Contains(t, joined, "derived from the filename")
	require.Contains(t, joined, "noexit.sh")
	require.Contains(t, joined, "no explicit exit status")
	require.Contains(t, joined, "nodesc.sh")
	require.Contains(t, joined, "missing DESCRIPTION")
	require.NotContains(t, joined, "clean.sh")
}

func TestCheckTaskFilesCleanTree(t *testing.T) {
	root := t.TempDir()
	taskDir := filepath.Join(root, "tasks")
	require.NoError(t, os.MkdirAll(taskDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, "build.sh"),
		[]byte("# TASK: build\n# DESCRIPTION: builds\nexit 0\n"), 0o755))

	registry, err := discover.Tasks(discover.Options{
		ProjectRoot:   root,
		TaskDirectory: "tasks",
		BuiltIns:      runner.BuiltinTasks(),
	})
	require.NoError(t, err)

	require.Empty(t, checkTaskFiles(registry))
}
