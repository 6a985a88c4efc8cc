// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package validate enforces syntactic rules on task names, namespaces, and
// paths before any task file is read or executed.
package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// TaskNamePattern is the rule every task and namespace name must satisfy.
const TaskNamePattern = `^[a-z0-9][a-z0-9-]{0,49}$`

// dangerousChars are shell metacharacters never allowed in directory
// parameters or script paths.
const dangerousChars = ";|&$`(){}[]<>"

var taskNameRegex = regexp.MustCompile(TaskNamePattern)

// TaskName checks a task or namespace name against TaskNamePattern. The
// source names the parameter the value came from so the error pinpoints it.
func TaskName(name, source string) error {
	if !taskNameRegex.MatchString(name) {
		return fmt.Errorf("invalid task name %q from %s: names must match %s", name, source, TaskNamePattern)
	}
	return nil
}

// TaskDirectory checks a task-directory parameter. The path must be relative
// to the project root, free of parent references, and free of shell
// metacharacters.
func TaskDirectory(path string) error {
	if path == "" {
		return fmt.Errorf("task directory must not be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("invalid task directory %q: must be relative to the project root", path)
	}
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return fmt.Errorf("invalid task directory %q: parent references are not allowed", path)
		}
	}
	if i := strings.IndexAny(path, dangerousChars); i >= 0 {
		return fmt.Errorf("invalid task directory %q: character %q is not allowed", path, path[i])
	}
	return nil
}

// ScriptPath resolves a script path to an absolute path and verifies it is a
// strict descendant of the project root and free of dangerous characters.
// Callers must invoke this immediately before the file's content is turned
// into an executable unit.
func ScriptPath(path, projectRoot string) (string, error) {
	if i := strings.IndexAny(path, dangerousChars); i >= 0 {
		return "", fmt.Errorf("invalid script path %q: character %q is not allowed", path, path[i])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("unable to resolve script path %q: %w", path, err)
	}
	// Symlinks must not smuggle content from outside the project, so the
	// containment check runs on the resolved target. A path that does not
	// exist yet cannot be resolved and is checked as-is.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	rootAbs, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", fmt.Errorf("unable to resolve project root %q: %w", projectRoot, err)
	}
	if resolved, err := filepath.EvalSymlinks(rootAbs); err == nil {
		rootAbs = resolved
	}

	rel, err := filepath.Rel(rootAbs, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("script path %q escapes the project root %q", path, projectRoot)
	}

	return abs, nil
}
