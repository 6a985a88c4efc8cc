// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package cmd contains the CLI commands for wrangle.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/config/lang"
	"github.com/wrangle-dev/wrangle/src/message"
	"github.com/wrangle-dev/wrangle/src/pkg/audit"
	"github.com/wrangle-dev/wrangle/src/pkg/discover"
	"github.com/wrangle-dev/wrangle/src/pkg/runner"
	"github.com/wrangle-dev/wrangle/src/pkg/validate"
	"github.com/wrangle-dev/wrangle/src/pkg/vars"
	"github.com/wrangle-dev/wrangle/src/types"
)

var (
	// skipDependencies runs only the requested tasks (--only)
	skipDependencies bool

	// outlineOnly previews the execution plan without running (--outline)
	outlineOnly bool

	// listTasks prints the registry instead of running anything
	listTasks bool
)

var runCmd = &cobra.Command{
	Use:   "run [TASK...]",
	Short: lang.CmdRunShort,
	ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		registry, err := discoverTasks()
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveNoFileComp
		}
		var names []string
		for name := range registry.Tasks {
			names = append(names, name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(_ *cobra.Command, args []string) {
		names := requestedTasks(args)

		// All identifier and directory validation happens before any task
		// file is read.
		if err := validate.TaskDirectory(config.TaskDirectory); err != nil {
			message.Fatalf(err, "%s", err.Error())
		}
		for _, name := range names {
			if err := validate.TaskName(name, "command line target"); err != nil {
				message.Fatalf(err, "%s", err.Error())
			}
		}

		projectRoot, err := os.Getwd()
		if err != nil {
			message.Fatalf(err, "unable to determine the working directory")
		}

		auditLogger := audit.New(projectRoot)
		if config.TaskDirectory != config.DefaultTaskDirectory {
			auditLogger.Info(audit.EventCustomTaskDirectory, "using task directory %q", config.TaskDirectory)
		}

		registry, err := discoverTasks()
		if err != nil {
			message.Fatalf(err, lang.CmdRunErrTaskFailed, err.Error())
		}
		for _, warning := range registry.Warnings {
			message.SLog.Warn(warning)
		}

		store, err := vars.Load(projectRoot)
		if err != nil {
			message.Fatalf(err, lang.CmdVarsErr, err.Error())
		}

		r := runner.New(registry, store, auditLogger, runner.Options{
			ProjectRoot:      projectRoot,
			TaskDirectory:    config.TaskDirectory,
			SkipDependencies: skipDependencies,
		})

		if listTasks {
			if err := r.Invoke(runner.BuiltinListTasks); err != nil {
				message.Fatalf(err, "error listing tasks")
			}
			return
		}

		if outlineOnly {
			outline, err := r.Outline(names)
			if err != nil {
				message.Fatalf(err, lang.CmdRunErrTaskFailed, err.Error())
			}
			if err := outline.Render(); err != nil {
				message.Fatalf(err, lang.CmdRunErrTaskFailed, err.Error())
			}
			if len(outline.Skipped) > 0 {
				message.SLog.Info(sprintSkipped(outline.Skipped))
			}
			return
		}

		if err := r.Run(names); err != nil {
			message.Fatalf(err, lang.CmdRunErrTaskFailed, err.Error())
		}
		if skipped := r.SkippedDependencies(); len(skipped) > 0 {
			message.SLog.Info(sprintSkipped(skipped))
		}
	},
}

// requestedTasks splits the positional arguments into task names; names may
// be space- or comma-separated. With no arguments the "default" task runs.
func requestedTasks(args []string) []string {
	var names []string
	for _, arg := range args {
		for _, name := range strings.Split(arg, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		names = []string{"default"}
	}
	return names
}

func discoverTasks() (*types.Registry, error) {
	projectRoot, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return discover.Tasks(discover.Options{
		ProjectRoot:   projectRoot,
		TaskDirectory: config.TaskDirectory,
		BuiltIns:      runner.BuiltinTasks(),
	})
}

func sprintSkipped(skipped []string) string {
	return fmt.Sprintf(lang.CmdRunOutlineSkipNote, strings.Join(skipped, ", "))
}

func init() {
	initViper()
	rootCmd.AddCommand(runCmd)
	runFlags := runCmd.Flags()
	runFlags.BoolVar(&skipDependencies, "only", false, lang.CmdRunFlagOnly)
	runFlags.BoolVar(&outlineOnly, "outline", false, lang.CmdRunFlagOutline)
	runFlags.StringVar(&config.TaskDirectory, "task-directory", v.GetString(V_TASK_DIR), lang.CmdRunFlagTaskDir)
	runFlags.BoolVar(&listTasks, "list-tasks", false, lang.CmdRunFlagListTasks)
}
