// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package config contains configuration strings and globals for wrangle
package config

import (
	"os"
	"strings"
)

const (
	// DefaultTaskDirectory is the task root scanned when --task-directory is not given
	DefaultTaskDirectory = "tasks"

	// TaskFilePattern matches eligible task files directly under the task root
	TaskFilePattern = "*.sh"

	// VariablesFileName is the project variable file discovered by upward search
	VariablesFileName = "wrangle.yaml"

	// EnvPrefix is the prefix for viper configs and environment toggles
	EnvPrefix = "wrangle"

	// MetadataMaxLines bounds how far into a task file the metadata parser reads
	MetadataMaxLines = 30
)

var (
	// CLIVersion tracks the version of the CLI
	CLIVersion = "unset"

	// LogLevel is the log level for the runner
	LogLevel string

	// SkipLogFile disables saving a log file for this run
	SkipLogFile bool

	// TempDirectory is the directory to store temporary files
	TempDirectory string

	// TaskDirectory is the task root for this invocation, relative to the project root
	TaskDirectory = DefaultTaskDirectory
)

// SuppressNameWarnings reports whether fallback-naming warnings are silenced
// via the WRANGLE_SUPPRESS_NAME_WARNINGS environment toggle.
func SuppressNameWarnings() bool {
	return envTruthy(strings.ToUpper(EnvPrefix) + "_SUPPRESS_NAME_WARNINGS")
}

// AuditEnabled reports whether the audit log is enabled via WRANGLE_AUDIT_LOG.
func AuditEnabled() bool {
	return envTruthy(strings.ToUpper(EnvPrefix) + "_AUDIT_LOG")
}

func envTruthy(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
