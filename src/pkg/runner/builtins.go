// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

package runner

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"

	"github.com/wrangle-dev/wrangle/src/pkg/vars"
	"github.com/wrangle-dev/wrangle/src/types"
)

// Built-in task names. These are always available but any project-defined
// task of the same name takes precedence.
const (
	BuiltinListTasks       = "list-tasks"
	BuiltinListVariables   = "list-variables"
	BuiltinShowEnvironment = "show-environment"
)

// BuiltinTasks returns the descriptors for the in-process tasks.
func BuiltinTasks() []types.TaskDescriptor {
	return []types.TaskDescriptor{
		{
			Names:       []string{BuiltinListTasks},
			Description: "List every registered task with its namespace label",
			BuiltIn:     true,
		},
		{
			Names:       []string{BuiltinListVariables},
			Description: "List built-in and user-defined variables",
			BuiltIn:     true,
		},
		{
			Names:       []string{BuiltinShowEnvironment},
			Description: "Show the merged configuration view a task would receive",
			BuiltIn:     true,
		},
	}
}

// runBuiltin dispatches a built-in descriptor to its in-process function and
// uses its return value directly as the task result.
func (r *Runner) runBuiltin(task types.TaskDescriptor) error {
	switch task.Name() {
	case BuiltinListTasks:
		return r.listTasks()
	case BuiltinListVariables:
		return r.listVariables()
	case BuiltinShowEnvironment:
		return r.showEnvironment()
	}
	return fmt.Errorf("unknown built-in task %q", task.Name())
}

func (r *Runner) listTasks() error {
	names := make([]string, 0, len(r.registry.Tasks))
	for name := range r.registry.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := [][]string{{"Name", "Namespace", "Description"}}
	for _, name := range names {
		task := r.registry.Tasks[name]
		namespace := task.Namespace
		if task.BuiltIn {
			namespace = "(built-in)"
		}
		rows = append(rows, []string{name, namespace, task.Description})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func (r *Runner) listVariables() error {
	builtins := vars.BuiltinVariables(vars.Builtins{
		ProjectRoot:       r.opts.ProjectRoot,
		TaskDirectory:     r.opts.TaskDirectory,
		TaskDirectoryPath: filepath.Join(r.opts.ProjectRoot, r.opts.TaskDirectory),
	})
	user, err := r.store.UserVariables()
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("Built-in variables")
	renderVariableTable(builtins)

	pterm.DefaultSection.Println("User variables")
	if len(user) == 0 {
		pterm.Println("(none)")
		return nil
	}
	renderVariableTable(user)
	return nil
}

func (r *Runner) showEnvironment() error {
	view, err := r.store.MergedView(vars.Builtins{
		ProjectRoot:       r.opts.ProjectRoot,
		TaskDirectory:     r.opts.TaskDirectory,
		TaskDirectoryPath: filepath.Join(r.opts.ProjectRoot, r.opts.TaskDirectory),
	})
	if err != nil {
		return err
	}
	renderVariableTable(view)
	return nil
}

func renderVariableTable(variables map[string]string) {
	paths := make([]string, 0, len(variables))
	for path := range variables {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	rows := [][]string{{"Name", "Value"}}
	for _, path := range paths {
		rows = append(rows, []string{path, variables[path]})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
