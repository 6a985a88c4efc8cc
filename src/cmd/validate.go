// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package cmd contains the CLI commands for wrangle.
package cmd

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/config/lang"
	"github.com/wrangle-dev/wrangle/src/message"
	"github.com/wrangle-dev/wrangle/src/pkg/validate"
	"github.com/wrangle-dev/wrangle/src/types"
)

// explicitExit matches an explicit exit statement anywhere in a task body.
var explicitExit = regexp.MustCompile(`(?m)^\s*exit\b`)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: lang.CmdValidateShort,
	Run: func(_ *cobra.Command, _ []string) {
		if err := validate.TaskDirectory(config.TaskDirectory); err != nil {
			message.Fatalf(err, "%s", err.Error())
		}

		registry, err := discoverTasks()
		if err != nil {
			message.Fatalf(err, "%s", err.Error())
		}
		for _, warning := range registry.Warnings {
			message.SLog.Warn(warning)
		}

		issues := checkTaskFiles(registry)
		if len(issues) > 0 {
			for _, issue := range issues {
				message.SLog.Warn(issue)
			}
			message.Fatalf(nil, lang.CmdValidateErrSummary, len(issues))
		}
		message.SLog.Info(lang.CmdValidateOK)
	},
}

// checkTaskFiles runs the static checks over every discovered task file:
// metadata completeness and the presence of an explicit exit status. Nothing
// is executed.
func checkTaskFiles(registry *types.Registry) []string {
	var issues []string
	seen := map[string]bool{}

	names := make([]string, 0, len(registry.Tasks))
	for name := range registry.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		task := registry.Tasks[name]
		if task.BuiltIn || seen[task.ScriptPath] {
			continue
		}
		seen[task.ScriptPath] = true

		if task.NameSource == types.NameSourceDerived {
			issues = append(issues, fmt.Sprintf("%s: missing TASK metadata line, name %q was derived from the filename", task.ScriptPath, task.Name()))
		}
		if task.Description == "" {
			issues = append(issues, fmt.Sprintf("%s: missing DESCRIPTION metadata", task.ScriptPath))
		}

		body, err := os.ReadFile(task.ScriptPath)
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s: unreadable: %s", task.ScriptPath, err))
			continue
		}
		if !explicitExit.Match(body) {
			issues = append(issues, fmt.Sprintf("%s: no explicit exit status, the task would fall through to the last command's status", task.ScriptPath))
		}
	}
	return issues
}

func init() {
	initViper()
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&config.TaskDirectory, "task-directory", v.GetString(V_TASK_DIR), lang.CmdRunFlagTaskDir)
}
