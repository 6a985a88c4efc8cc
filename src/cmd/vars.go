// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package cmd contains the CLI commands for wrangle.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrangle-dev/wrangle/src/config/lang"
	"github.com/wrangle-dev/wrangle/src/message"
	"github.com/wrangle-dev/wrangle/src/pkg/vars"
)

var varsCmd = &cobra.Command{
	Use:     "vars",
	Aliases: []string{"variables"},
	Short:   lang.CmdVarsShort,
}

var varsListCmd = &cobra.Command{
	Use:   "list",
	Short: lang.CmdVarsListShort,
	Run: func(_ *cobra.Command, _ []string) {
		store := loadStore()
		paths, err := store.Paths()
		if err != nil {
			message.Fatalf(err, lang.CmdVarsErr, err.Error())
		}
		if len(paths) == 0 {
			message.SLog.Info(fmt.Sprintf("No user variables defined (would be read from %s)", store.FilePath()))
			return
		}
		user, err := store.UserVariables()
		if err != nil {
			message.Fatalf(err, lang.CmdVarsErr, err.Error())
		}
		for _, path := range paths {
			fmt.Printf("%s=%s\n", path, user[path])
		}
	},
}

var varsAddCmd = &cobra.Command{
	Use:   "add NAME VALUE",
	Short: lang.CmdVarsAddShort,
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		store := loadStore()
		if err := store.Add(args[0], args[1]); err != nil {
			message.Fatalf(err, lang.CmdVarsErr, err.Error())
		}
		message.SLog.Info(fmt.Sprintf("Set %s in %s", args[0], store.FilePath()))
	},
}

var varsRemoveCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: lang.CmdVarsRemoveShort,
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		store := loadStore()
		if err := store.Remove(args[0]); err != nil {
			message.Fatalf(err, lang.CmdVarsErr, err.Error())
		}
		message.SLog.Info(fmt.Sprintf("Removed %s from %s", args[0], store.FilePath()))
	},
}

func loadStore() *vars.Store {
	cwd, err := os.Getwd()
	if err != nil {
		message.Fatalf(err, "unable to determine the working directory")
	}
	store, err := vars.Load(cwd)
	if err != nil {
		message.Fatalf(err, lang.CmdVarsErr, err.Error())
	}
	return store
}

func init() {
	rootCmd.AddCommand(varsCmd)
	varsCmd.AddCommand(varsListCmd)
	varsCmd.AddCommand(varsAddCmd)
	varsCmd.AddCommand(varsRemoveCmd)
}
