// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package cmd contains the CLI commands for wrangle.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/config/lang"
	"github.com/wrangle-dev/wrangle/src/message"
)

const (
	// Root config keys
	V_LOG_LEVEL   = "options.log_level"
	V_NO_PROGRESS = "options.no_progress"
	V_NO_LOG_FILE = "options.no_log_file"
	V_TMP_DIR     = "options.tmp_dir"
	V_TASK_DIR    = "options.task_directory"
)

var (
	// Viper instance used by the cmd package
	v *viper.Viper

	// holds any error from reading in Viper config
	vConfigError error
)

func initViper() {
	// Already initialized by some other command
	if v != nil {
		return
	}

	v = viper.New()

	// Specify an alternate config file
	cfgFile := os.Getenv("WRANGLE_CONFIG")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Search config paths (order matters!)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.wrangle")
		v.SetConfigName("wrangle-config")
	}

	// In wrangle-config.yaml the key is options.<opt>, but in the
	// environment it's WRANGLE_<OPT>, e.g. WRANGLE_LOG_LEVEL=debug
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("OPTIONS.", ""))
	v.AutomaticEnv()

	vConfigError = v.ReadInConfig()
	if vConfigError != nil {
		// Config file not found; ignore
		if _, ok := vConfigError.(viper.ConfigFileNotFoundError); !ok {
			message.SLog.Warn(fmt.Sprintf(lang.CmdViperErrLoadingConfigFile, vConfigError.Error()))
		}
	}
}

func printViperConfigUsed() {
	// Optional, so ignore file not found errors
	if vConfigError != nil {
		// Config file not found; ignore
		if _, ok := vConfigError.(viper.ConfigFileNotFoundError); !ok {
			message.SLog.Warn(fmt.Sprintf(lang.CmdViperErrLoadingConfigFile, vConfigError.Error()))
		}
	} else {
		message.SLog.Info(fmt.Sprintf(lang.CmdViperInfoUsingConfigFile, v.ConfigFileUsed()))
	}
}
