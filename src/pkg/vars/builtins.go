// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

package vars

import (
	"github.com/defenseunicorns/pkg/helpers/v2"
)

// Builtins are the engine-provided facts exposed to every task alongside the
// user variables.
type Builtins struct {
	ProjectRoot       string
	TaskDirectory     string
	TaskDirectoryPath string
	TaskName          string
	Namespace         string
	ScriptDirectory   string
	GitRoot           string
	GitBranch         string
}

// colorTable is a fixed theme exposed to task bodies so their output matches
// the runner's.
var colorTable = map[string]string{
	"Colors.Success": "\033[32m",
	"Colors.Warning": "\033[33m",
	"Colors.Error":   "\033[31m",
	"Colors.Info":    "\033[36m",
	"Colors.Reset":   "\033[0m",
}

// BuiltinVariables returns the built-in facts flattened into dotted paths.
func BuiltinVariables(b Builtins) map[string]string {
	facts := map[string]string{
		"ProjectRoot":       b.ProjectRoot,
		"TaskDirectory":     b.TaskDirectory,
		"TaskDirectoryPath": b.TaskDirectoryPath,
		"TaskName":          b.TaskName,
		"Namespace":         b.Namespace,
		"ScriptDirectory":   b.ScriptDirectory,
		"GitRoot":           b.GitRoot,
		"GitBranch":         b.GitBranch,
	}
	return helpers.MergeMap(colorTable, facts)
}

// MergedView overlays the user variables on the built-in facts. A user entry
// wins for its own leaf key only, other built-ins stay intact.
func (s *Store) MergedView(b Builtins) (map[string]string, error) {
	user, err := s.UserVariables()
	if err != nil {
		return nil, err
	}
	return helpers.MergeMap(BuiltinVariables(b), user), nil
}
