// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

package discover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wrangle-dev/wrangle/src/types"
)

func writeTask(t *testing.T, dir, fileName, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o755))
}

func discoverFixture(t *testing.T, root string, builtIns ...types.TaskDescriptor) *types.Registry {
	t.Helper()
	registry, err := Tasks(Options{ProjectRoot: root, TaskDirectory: "tasks", BuiltIns: builtIns})
	require.NoError(t, err)
	return registry
}

func TestDiscoverRootTasks(t *testing.T) {
	root := t.TempDir()
	writeTask(t, filepath.Join(root, "tasks"), "build.sh", "# TASK: build\n# DESCRIPTION: builds\n# DEPENDS: format\nexit 0\n")
	writeTask(t, filepath.Join(root, "tasks"), "format.sh", "# TASK: format\nexit 0\n")

	registry := discoverFixture(t, root)

	build, ok := registry.Lookup("build")
	require.True(t, ok)
	require.Equal(t, "builds", build.Description)
	require.Equal(t, []string{"format"}, build.Dependencies)
	require.Empty(t, build.Namespace)
	require.True(t, filepath.IsAbs(build.ScriptPath))

	_, ok = registry.Lookup("format")
	require.True(t, ok)
}

func TestDiscoverSkipsTestAndSpecFiles(t *testing.T) {
	root := t.TempDir()
	writeTask(t, filepath.Join(root, "tasks"), "build.sh", "# TASK: build\nexit 0\n")
	writeTask(t, filepath.Join(root, "tasks"), "build_test.sh", "# TASK: sneaky\nexit 0\n")
	writeTask(t, filepath.Join(root, "tasks"), "build.spec.sh", "# TASK: sneakier\nexit 0\n")
	writeTask(t, filepath.Join(root, "tasks"), "notes.txt", "not a task\n")

	registry := discoverFixture(t, root)

	_, ok := registry.Lookup("sneaky")
	require.False(t, ok)
	_, ok = registry.Lookup("sneakier")
	require.False(t, ok)
	_, ok = registry.Lookup("build")
	require.True(t, ok)
}

func TestDiscoverNamespaces(t *testing.T) {
	root := t.TempDir()
	writeTask(t, filepath.Join(root, "tasks", "bicep"), "build.sh", "# TASK: build\nexit 0\n")
	writeTask(t, filepath.Join(root, "tasks", "golang"), "build.sh", "# TASK: build\nexit 0\n")

	registry := discoverFixture(t, root)

	bicep, ok := registry.Lookup("bicep-build")
	require.True(t, ok)
	require.Equal(t, "bicep", bicep.Namespace)

	golang, ok := registry.Lookup("golang-build")
	require.True(t, ok)
	require.Equal(t, "golang", golang.Namespace)

	// The bare name is never registered for namespaced tasks.
	_, ok = registry.Lookup("build")
	require.False(t, ok)
}

func TestDiscoverSkipsInvalidNamespaceDirectories(t *testing.T) {
	root := t.TempDir()
	writeTask(t, filepath.Join(root, "tasks", "Bad Namespace"), "build.sh", "# TASK: build\nexit 0\n")

	registry := discoverFixture(t, root)

	require.Empty(t, registry.Tasks)
	require.NotEmpty(t, registry.Warnings)
	require.Contains(t, strings.Join(registry.Warnings, "\n"), "invalid characters")
}

func TestDiscoverDoesNotDescendTwoLevels(t *testing.T) {
	root := t.TempDir()
	writeTask(t, filepath.Join(root, "tasks", "bicep", "nested"), "deep.sh", "# TASK: deep\nexit 0\n")

	registry := discoverFixture(t, root)

	_, ok := registry.Lookup("bicep-deep")
	require.False(t, ok)
	_, ok = registry.Lookup("deep")
	require.False(t, ok)
}

func TestDiscoverDropsInvalidTaskNames(t *testing.T) {
	root := t.TempDir()
	writeTask(t, filepath.Join(root, "tasks"), "bad.sh", "# TASK: Not-Valid\nexit 0\n")

	registry := discoverFixture(t, root)

	require.Empty(t, registry.Tasks)
	require.NotEmpty(t, registry.Warnings)
}

func TestDiscoverWarnsOnFallbackNaming(t *testing.T) {
	root := t.TempDir()
	writeTask(t, filepath.Join(root, "tasks"), "Invoke-Build.sh", "exit 0\n")

	registry := discoverFixture(t, root)

	task, ok := registry.Lookup("build")
	require.True(t, ok)
	require.Equal(t, types.NameSourceDerived, task.NameSource)
	require.Contains(t, strings.Join(registry.Warnings, "\n"), "derived name")
}

func TestBuiltInsAreOverriddenByProjectTasks(t *testing.T) {
	root := t.TempDir()
	writeTask(t, filepath.Join(root, "tasks"), "list-tasks.sh", "# TASK: list-tasks\nexit 0\n")

	builtIn := types.TaskDescriptor{Names: []string{"list-tasks"}, BuiltIn: true}
	registry := discoverFixture(t, root, builtIn)

	task, ok := registry.Lookup("list-tasks")
	require.True(t, ok)
	require.False(t, task.BuiltIn)

	// Overriding a built-in is intentional customization, not a warning.
	for _, warning := range registry.Warnings {
		require.NotContains(t, warning, "list-tasks")
	}
}

func TestRootTaskOutranksNamespacedCollision(t *testing.T) {
	root := t.TempDir()
	// A namespaced task whose resolved name collides with a root task.
	writeTask(t, filepath.Join(root, "tasks"), "bicep-build.sh", "# TASK: bicep-build\n# DESCRIPTION: root wins\nexit 0\n")
	writeTask(t, filepath.Join(root, "tasks", "bicep"), "build.sh", "# TASK: build\n# DESCRIPTION: namespaced\nexit 0\n")

	registry := discoverFixture(t, root)

	task, ok := registry.Lookup("bicep-build")
	require.True(t, ok)
	require.Equal(t, "root wins", task.Description)
	require.Empty(t, task.Namespace)
}

func TestDuplicateNameInOneNamespaceWarns(t *testing.T) {
	root := t.TempDir()
	writeTask(t, filepath.Join(root, "tasks", "bicep"), "aaa.sh", "# TASK: build\n# DESCRIPTION: first wins\nexit 0\n")
	writeTask(t, filepath.Join(root, "tasks", "bicep"), "bbb.sh", "# TASK: build\n# DESCRIPTION: dropped\nexit 0\n")

	registry := discoverFixture(t, root)

	task, ok := registry.Lookup("bicep-build")
	require.True(t, ok)
	require.Equal(t, "first wins", task.Description)

	warnings := strings.Join(registry.Warnings, "\n")
	require.Contains(t, warnings, "more than once in namespace")
	require.Contains(t, warnings, `"bicep"`)
}

func TestMissingTaskDirectoryYieldsBuiltInsOnly(t *testing.T) {
	builtIn := types.TaskDescriptor{Names: []string{"list-tasks"}, BuiltIn: true}
	registry := discoverFixture(t, t.TempDir(), builtIn)

	require.Len(t, registry.Tasks, 1)
	_, ok := registry.Lookup("list-tasks")
	require.True(t, ok)
}
