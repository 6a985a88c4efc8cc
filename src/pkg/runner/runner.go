// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package runner resolves task dependencies and executes tasks in a
// deterministic, deduplicated order.
package runner

import (
	"fmt"

	"github.com/wrangle-dev/wrangle/src/config/lang"
	"github.com/wrangle-dev/wrangle/src/message"
	"github.com/wrangle-dev/wrangle/src/pkg/audit"
	"github.com/wrangle-dev/wrangle/src/pkg/vars"
	"github.com/wrangle-dev/wrangle/src/types"
)

// Options configures one top-level invocation.
type Options struct {
	// ProjectRoot is the absolute project boundary scripts may not escape
	ProjectRoot string
	// TaskDirectory is the task root, relative to ProjectRoot
	TaskDirectory string
	// SkipDependencies runs only the requested tasks
	SkipDependencies bool
}

// Runner holds the state for one top-level invocation. It is never shared
// across invocations: the executed set is created empty at invocation start
// and discarded with the runner.
type Runner struct {
	registry *types.Registry
	store    *vars.Store
	audit    *audit.Logger
	opts     Options

	// executed tracks tasks that have at least started. Membership makes
	// re-invocation a no-op, which both deduplicates shared dependencies
	// and terminates dependency cycles.
	executed map[string]bool

	// skippedDeps records dependency names not resolved because of
	// SkipDependencies, for transparency in output
	skippedDeps []string
}

// New creates a runner for one invocation.
func New(registry *types.Registry, store *vars.Store, auditLogger *audit.Logger, opts Options) *Runner {
	return &Runner{
		registry: registry,
		store:    store,
		audit:    auditLogger,
		opts:     opts,
		executed: map[string]bool{},
	}
}

// Run invokes each requested task in order, aborting on the first failure.
// Every requested name must exist in the registry.
func (r *Runner) Run(taskNames []string) error {
	for _, name := range taskNames {
		if _, ok := r.registry.Lookup(name); !ok {
			return fmt.Errorf("task %q not found", name)
		}
	}
	for _, name := range taskNames {
		if err := r.Invoke(name); err != nil {
			return err
		}
	}
	return nil
}

// Invoke runs one task and its dependency chain. A task that has already
// started or finished within this invocation contributes nothing further.
func (r *Runner) Invoke(taskName string) error {
	if r.executed[taskName] {
		return nil
	}
	r.executed[taskName] = true

	task, ok := r.registry.Lookup(taskName)
	if !ok {
		return fmt.Errorf("task %q not found", taskName)
	}

	if r.opts.SkipDependencies {
		r.skippedDeps = append(r.skippedDeps, task.Dependencies...)
	} else {
		for _, dep := range task.Dependencies {
			resolved, ok := r.resolveDependency(task, dep)
			if !ok {
				// A dependency that does not exist at all is non-fatal.
				message.SLog.Warn(fmt.Sprintf(lang.WarnMissingDependency, dep, taskName))
				continue
			}
			if err := r.Invoke(resolved); err != nil {
				// A dependency that exists and fails aborts the whole run.
				return fmt.Errorf("dependency %q of task %q failed: %w", resolved, taskName, err)
			}
		}
	}

	return r.execute(taskName, task)
}

// SkippedDependencies returns the dependency names skipped under
// SkipDependencies mode, in encounter order.
func (r *Runner) SkippedDependencies() []string {
	return r.skippedDeps
}

// resolveDependency maps a declared dependency name to a registry name. A
// namespaced task first looks for the dependency inside its own namespace,
// then falls back to the bare name.
func (r *Runner) resolveDependency(task types.TaskDescriptor, dep string) (string, bool) {
	if task.Namespace != "" {
		namespaced := task.Namespace + "-" + dep
		if _, ok := r.registry.Lookup(namespaced); ok {
			return namespaced, true
		}
	}
	if _, ok := r.registry.Lookup(dep); ok {
		return dep, true
	}
	return "", false
}

func (r *Runner) execute(resolvedName string, task types.TaskDescriptor) error {
	r.audit.Info(audit.EventTaskStart, "task %s starting", resolvedName)

	var err error
	if task.BuiltIn {
		err = r.runBuiltin(task)
	} else {
		err = r.executeScript(resolvedName, task)
	}

	if err != nil {
		r.audit.Warn(audit.EventTaskComplete, "task %s failed: %s", resolvedName, err)
		return err
	}
	r.audit.Info(audit.EventTaskComplete, "task %s succeeded", resolvedName)
	return nil
}
