// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package types contains all the types used by the runner.
package types

// RunConfig represents the contents of a wrangle-config.yaml file
type RunConfig struct {
	Options RunConfigOptions `json:"options,omitempty" jsonschema:"description=Default options applied to every wrangle invocation"`
}

// RunConfigOptions holds the defaults for the root command flags
type RunConfigOptions struct {
	LogLevel      string `json:"log_level,omitempty" jsonschema:"description=Log level for the runner,enum=warn,enum=info,enum=debug,enum=trace"`
	NoProgress    bool   `json:"no_progress,omitempty" jsonschema:"description=Disable fancy UI progress animations"`
	NoLogFile     bool   `json:"no_log_file,omitempty" jsonschema:"description=Disable log file creation"`
	TmpDir        string `json:"tmp_dir,omitempty" jsonschema:"description=Temporary directory to use for intermediate files"`
	TaskDirectory string `json:"task_directory,omitempty" jsonschema:"description=Task root directory relative to the project root"`
}
