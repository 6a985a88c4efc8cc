// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wrangle-dev/wrangle/src/message"
	"github.com/wrangle-dev/wrangle/src/pkg/audit"
	"github.com/wrangle-dev/wrangle/src/pkg/discover"
	"github.com/wrangle-dev/wrangle/src/pkg/vars"
)

// fixture builds a project tree, writes task scripts that append their names
// to an order file, and returns a runner over the discovered registry.
type fixture struct {
	t    *testing.T
	root string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	message.NoProgress = true
	return &fixture{t: t, root: t.TempDir()}
}

func (f *fixture) orderFile() string {
	return filepath.Join(f.root, "order.txt")
}

// task writes a script that records its own execution then exits 0.
func (f *fixture) task(namespace, name string, deps ...string) {
	body := fmt.Sprintf("printf '%s\\n' >> %s\nexit 0\n", name, f.orderFile())
	f.script(namespace, name, deps, body)
}

// failingTask writes a script that records itself then exits 1.
func (f *fixture) failingTask(namespace, name string, deps ...string) {
	body := fmt.Sprintf("printf '%s\\n' >> %s\nexit 1\n", name, f.orderFile())
	f.script(namespace, name, deps, body)
}

func (f *fixture) script(namespace, name string, deps []string, body string) {
	f.t.Helper()
	dir := filepath.Join(f.root, "tasks")
	if namespace != "" {
		dir = filepath.Join(dir, namespace)
	}
	require.NoError(f.t, os.MkdirAll(dir, 0o755))

	header := fmt.Sprintf("# TASK: %s\n", name)
	if len(deps) > 0 {
		header += fmt.Sprintf("# DEPENDS: %s\n", strings.Join(deps, ", "))
	}
	path := filepath.Join(dir, name+".sh")
	require.NoError(f.t, os.WriteFile(path, []byte(header+body), 0o755))
}

func (f *fixture) runner(skipDeps bool) *Runner {
	f.t.Helper()
	registry, err := discover.Tasks(discover.Options{
		ProjectRoot:   f.root,
		TaskDirectory: "tasks",
		BuiltIns:      BuiltinTasks(),
	})
	require.NoError(f.t, err)

	store, err := vars.Load(f.root)
	require.NoError(f.t, err)

	return New(registry, store, audit.New(f.root), Options{
		ProjectRoot:      f.root,
		TaskDirectory:    "tasks",
		SkipDependencies: skipDeps,
	})
}

func (f *fixture) executionOrder() []string {
	f.t.Helper()
	content, err := os.ReadFile(f.orderFile())
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(f.t, err)
	return strings.Fields(string(content))
}

func TestInvokeRunsDependenciesFirst(t *testing.T) {
	f := newFixture(t)
	f.task("", "format")
	f.task("", "lint")
	f.task("", "build", "format", "lint")

	require.NoError(t, f.runner(false).Invoke("build"))
	require.Equal(t, []string{"format", "lint", "build"}, f.executionOrder())
}

func TestSharedDependencyRunsExactlyOnce(t *testing.T) {
	f := newFixture(t)
	f.task("", "common")
	f.task("", "left", "common")
	f.task("", "right", "common")
	f.task("", "top", "left", "right")

	require.NoError(t, f.runner(false).Invoke("top"))
	require.Equal(t, []string{"common", "left", "right", "top"}, f.executionOrder())
}

func TestCyclicDependenciesTerminate(t *testing.T) {
	f := newFixture(t)
	f.task("", "alpha", "beta")
	f.task("", "beta", "gamma")
	f.task("", "gamma", "alpha")

	require.NoError(t, f.runner(false).Invoke("alpha"))

	// Each task runs at most once despite the cycle.
	order := f.executionOrder()
	require.Len(t, order, 3)
	require.Equal(t, "alpha", order[len(order)-1])
}

func TestSkipDependenciesMode(t *testing.T) {
	f := newFixture(t)
	f.task("", "format")
	f.task("", "lint")
	f.task("", "build", "format", "lint")

	r := f.runner(true)
	require.NoError(t, r.Invoke("build"))
	require.Equal(t, []string{"build"}, f.executionOrder())

	// The skipped names are surfaced for transparency.
	require.Equal(t, []string{"format", "lint"}, r.SkippedDependencies())
}

func TestMissingDependencyIsNonFatal(t *testing.T) {
	f := newFixture(t)
	f.task("", "build", "does-not-exist")

	require.NoError(t, f.runner(false).Invoke("build"))
	require.Equal(t, []string{"build"}, f.executionOrder())
}

func TestFailingDependencyAbortsTheRun(t *testing.T) {
	f := newFixture(t)
	f.failingTask("", "lint")
	f.task("", "build", "lint")

	err := f.runner(false).Invoke("build")
	require.Error(t, err)
	require.Contains(t, err.Error(), `"lint"`)

	// The dependent task never ran.
	require.Equal(t, []string{"lint"}, f.executionOrder())
}

func TestNamespaceScopedDependencyResolution(t *testing.T) {
	f := newFixture(t)
	f.task("bicep", "build")
	f.task("golang", "build")
	f.task("bicep", "deploy", "build")

	require.NoError(t, f.runner(false).Invoke("bicep-deploy"))

	// The bicep task resolved "build" inside its own namespace; the
	// golang task never ran.
	require.Equal(t, []string{"build", "deploy"}, f.executionOrder())
}

func TestNamespaceDependencyFallsBackToBareName(t *testing.T) {
	f := newFixture(t)
	f.task("", "format")
	f.task("bicep", "build", "format")

	require.NoError(t, f.runner(false).Invoke("bicep-build"))
	require.Equal(t, []string{"format", "build"}, f.executionOrder())
}

func TestRunRejectsUnknownTasks(t *testing.T) {
	f := newFixture(t)
	f.task("", "build")

	err := f.runner(false).Run([]string{"build", "nope"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `"nope"`)

	// Nothing ran: the whole request is validated up front.
	require.Empty(t, f.executionOrder())
}

func TestScriptRunsInItsOwnDirectory(t *testing.T) {
	f := newFixture(t)
	f.script("bicep", "where", nil, fmt.Sprintf("pwd >> %s\nexit 0\n", f.orderFile()))

	before, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, f.runner(false).Invoke("bicep-where"))

	after, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, before, after)

	order := f.executionOrder()
	require.Len(t, order, 1)
	// pwd reports the physical path, so resolve symlinks before comparing.
	want, err := filepath.EvalSymlinks(filepath.Join(f.root, "tasks", "bicep"))
	require.NoError(t, err)
	require.Equal(t, want, order[0])
}

func TestScriptReceivesMergedVariables(t *testing.T) {
	f := newFixture(t)

	store, err := vars.Load(f.root)
	require.NoError(t, err)
	require.NoError(t, store.Add("Azure.SubscriptionId", "sub-123"))

	f.script("", "env-check", nil, fmt.Sprintf(
		"printf '%%s %%s\\n' \"$WRANGLE_VAR_AZURE_SUBSCRIPTIONID\" \"$WRANGLE_VAR_TASKNAME\" >> %s\nexit 0\n",
		f.orderFile()))

	require.NoError(t, f.runner(false).Invoke("env-check"))
	require.Equal(t, []string{"sub-123", "env-check"}, f.executionOrder())
}
