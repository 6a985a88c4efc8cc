// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package cmd contains the CLI commands for wrangle.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/config/lang"
	"github.com/wrangle-dev/wrangle/src/message"
	"github.com/wrangle-dev/wrangle/src/pkg/audit"
	"github.com/wrangle-dev/wrangle/src/pkg/validate"
)

// scaffoldTemplate is the metadata header written into new task files. The
// trailing explicit exit keeps the file honest under `wrangle validate`.
const scaffoldTemplate = `#!/bin/sh
# TASK: %[1]s
# DESCRIPTION: TODO describe what %[1]s does
# DEPENDS:

echo "task %[1]s is not implemented yet"
exit 1
`

var newCmd = &cobra.Command{
	Use:   "new TASK_NAME",
	Short: lang.CmdNewShort,
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		name := args[0]

		if err := validate.TaskName(name, "new task argument"); err != nil {
			message.Fatalf(err, "%s", err.Error())
		}
		if err := validate.TaskDirectory(config.TaskDirectory); err != nil {
			message.Fatalf(err, "%s", err.Error())
		}

		projectRoot, err := os.Getwd()
		if err != nil {
			message.Fatalf(err, "unable to determine the working directory")
		}

		taskDir := filepath.Join(projectRoot, config.TaskDirectory)
		if err := os.MkdirAll(taskDir, 0o755); err != nil {
			message.Fatalf(err, lang.ErrCreatingDir, taskDir, err.Error())
		}

		path := filepath.Join(taskDir, name+".sh")
		if _, err := os.Stat(path); err == nil {
			message.Fatalf(nil, lang.CmdNewErrExists, path)
		}

		content := fmt.Sprintf(scaffoldTemplate, name)
		if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
			message.Fatalf(err, lang.CmdNewErrScaffold, err.Error())
		}

		audit.New(projectRoot).Info(audit.EventFileCreated, "created task file %s", path)
		message.SLog.Info(fmt.Sprintf(lang.CmdNewCreated, path))
	},
}

func init() {
	initViper()
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&config.TaskDirectory, "task-directory", v.GetString(V_TASK_DIR), lang.CmdRunFlagTaskDir)
}
