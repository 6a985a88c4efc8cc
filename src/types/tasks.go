// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package types contains all the types used by the runner.
package types

import "fmt"

// NameSource records how a task's name was determined.
type NameSource int

const (
	// NameSourceExplicit means the name came from a TASK metadata line
	NameSourceExplicit NameSource = iota
	// NameSourceDerived means the name was derived from the task's filename
	NameSourceDerived
)

// TaskDescriptor describes one discovered or built-in task.
type TaskDescriptor struct {
	// Names holds the canonical name first, followed by any aliases
	Names []string
	// Description of the task, may be empty
	Description string
	// Dependencies are task names to run first, may be namespaced or bare
	Dependencies []string
	// ScriptPath is the absolute path of the task file, empty for built-ins
	ScriptPath string
	// Namespace is set for tasks discovered under a namespace subdirectory
	Namespace string
	// BuiltIn marks tasks implemented in-process by the engine
	BuiltIn bool
	// NameSource records whether the name came from metadata or the filename
	NameSource NameSource
}

// Name returns the canonical task name.
func (t TaskDescriptor) Name() string {
	if len(t.Names) == 0 {
		return ""
	}
	return t.Names[0]
}

// Registry maps every resolved task name to exactly one descriptor.
// It is rebuilt on every invocation and never persisted.
type Registry struct {
	Tasks map[string]TaskDescriptor
	// Warnings collected during discovery and namespace resolution
	Warnings []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{Tasks: map[string]TaskDescriptor{}}
}

// Lookup returns the descriptor registered under a resolved name.
func (r *Registry) Lookup(name string) (TaskDescriptor, bool) {
	task, ok := r.Tasks[name]
	return task, ok
}

// Warnf records a human-readable warning on the registry.
func (r *Registry) Warnf(format string, a ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, a...))
}
