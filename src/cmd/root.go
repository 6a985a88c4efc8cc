// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package cmd contains the CLI commands for wrangle.
package cmd

import (
	"fmt"
	"os"

	"github.com/defenseunicorns/pkg/exec"
	"github.com/spf13/cobra"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/config/lang"
	"github.com/wrangle-dev/wrangle/src/message"
	"github.com/wrangle-dev/wrangle/src/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use: "wrangle COMMAND",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		exec.ExitOnInterrupt()

		// Don't add a log file for the help command
		if cmd.Parent() == nil {
			config.SkipLogFile = true
		}
		cliSetup()
	},
	Short: lang.RootCmdShort,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintln(os.Stderr)
		err := cmd.Help()
		if err != nil {
			message.Fatalf(err, "error calling help command")
		}
	},
}

// Execute is the entrypoint for the CLI.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// RootCmd returns the root command.
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	initViper()

	v.SetDefault(V_LOG_LEVEL, "info")
	v.SetDefault(V_NO_PROGRESS, false)
	v.SetDefault(V_NO_LOG_FILE, false)
	v.SetDefault(V_TMP_DIR, "")
	v.SetDefault(V_TASK_DIR, config.DefaultTaskDirectory)

	rootCmd.PersistentFlags().StringVarP(&config.LogLevel, "log-level", "l", v.GetString(V_LOG_LEVEL), lang.RootCmdFlagLogLevel)
	rootCmd.PersistentFlags().BoolVar(&message.NoProgress, "no-progress", v.GetBool(V_NO_PROGRESS), lang.RootCmdFlagNoProgress)
	rootCmd.PersistentFlags().BoolVar(&config.SkipLogFile, "no-log-file", v.GetBool(V_NO_LOG_FILE), lang.RootCmdFlagSkipLogFile)
	rootCmd.PersistentFlags().StringVar(&config.TempDirectory, "tmpdir", v.GetString(V_TMP_DIR), lang.RootCmdFlagTempDir)
}

func cliSetup() {
	match := map[string]message.LogLevel{
		"warn":  message.WarnLevel,
		"info":  message.InfoLevel,
		"debug": message.DebugLevel,
		"trace": message.TraceLevel,
	}

	printViperConfigUsed()

	// No log level set, so use the default
	if config.LogLevel != "" {
		if lvl, ok := match[config.LogLevel]; ok {
			message.SetLogLevel(lvl)
			message.SLog.Debug("Log level set to " + config.LogLevel)
		} else {
			message.SLog.Warn(lang.RootCmdErrInvalidLogLevel)
		}
	}

	if !config.SkipLogFile && !listTasks {
		utils.UseLogFile()
	}
}
