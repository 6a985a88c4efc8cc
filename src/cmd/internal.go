// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package cmd contains the CLI commands for wrangle.
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alecthomas/jsonschema"
	"github.com/spf13/cobra"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/config/lang"
	"github.com/wrangle-dev/wrangle/src/message"
	"github.com/wrangle-dev/wrangle/src/types"
)

var internalCmd = &cobra.Command{
	Use:     "internal",
	Aliases: []string{"dev"},
	Hidden:  true,
	Short:   lang.CmdInternalShort,
}

var configSchemaCmd = &cobra.Command{
	Use:     "config-schema",
	Aliases: []string{"c"},
	Short:   lang.CmdInternalConfigSchemaShort,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		config.SkipLogFile = true
	},
	Run: func(_ *cobra.Command, _ []string) {
		schema := jsonschema.Reflect(&types.RunConfig{})
		output, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			message.Fatalf(err, "%s", lang.CmdInternalConfigSchemaErr)
		}
		fmt.Print(string(output) + "\n")
	},
}

func init() {
	rootCmd.AddCommand(internalCmd)

	internalCmd.AddCommand(configSchemaCmd)
}
