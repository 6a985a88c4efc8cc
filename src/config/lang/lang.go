// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package lang contains the language strings in english used by wrangle
package lang

// Common error messages
const (
	ErrCreatingDir = "failed to create directory %s: %s"
	ErrWritingFile = "failed to write file %s: %w"
	ErrReadingFile = "failed to read file %s: %w"
)

// Root
const (
	RootCmdShort              = "CLI for the wrangle task runner"
	RootCmdFlagSkipLogFile    = "Disable log file creation"
	RootCmdFlagNoProgress     = "Disable fancy UI progress animations"
	RootCmdFlagLogLevel       = "Log level for the runner. Valid options are: warn, info, debug, trace"
	RootCmdErrInvalidLogLevel = "Invalid log level. Valid options are: warn, info, debug, trace."
	RootCmdFlagTempDir        = "Specify the temporary directory to use for intermediate files"
)

// Version
const (
	CmdVersionShort = "Shows the version of the running wrangle binary"
	CmdVersionLong  = "Displays the version of the wrangle release that the current binary was built from."
)

// Internal
const (
	CmdInternalShort             = "Internal cmds used by wrangle"
	CmdInternalConfigSchemaShort = "Generates a JSON schema for the wrangle-config.yaml configuration"
	CmdInternalConfigSchemaErr   = "Unable to generate the wrangle-config.yaml schema"
)

// Viper setup
const (
	CmdViperErrLoadingConfigFile = "failed to load config file: %s"
	CmdViperInfoUsingConfigFile  = "Using config file %s"
)

// Run
const (
	CmdRunShort           = "Runs one or more tasks from the task directory"
	CmdRunFlagOnly        = "Run only the requested tasks, skipping dependency resolution"
	CmdRunFlagOutline     = "Preview the execution plan without running anything"
	CmdRunFlagTaskDir     = "Override the default task directory (relative to the project root)"
	CmdRunFlagListTasks   = "List available tasks with their namespace labels"
	CmdRunErrNoTasks      = "no tasks requested and no default task found"
	CmdRunErrTaskFailed   = "Failed to run task: %s"
	CmdRunOutlineSkipNote = "Dependency resolution skipped for: %s"
)

// New
const (
	CmdNewShort       = "Scaffolds a new task file with the metadata template"
	CmdNewErrExists   = "task file %s already exists"
	CmdNewCreated     = "Created task file %s"
	CmdNewErrScaffold = "Failed to scaffold task: %s"
)

// Validate
const (
	CmdValidateShort      = "Runs static checks over all discovered task files without executing them"
	CmdValidateOK         = "All task files passed validation"
	CmdValidateErrSummary = "%d task file issue(s) found"
)

// Vars
const (
	CmdVarsShort       = "Variable store operations"
	CmdVarsListShort   = "Lists the user-defined variables in the project variable file"
	CmdVarsAddShort    = "Adds or updates a variable in the project variable file"
	CmdVarsRemoveShort = "Removes a variable from the project variable file"
	CmdVarsErr         = "Variable store operation failed: %s"
)

// Discovery and registry warnings
const (
	WarnInvalidTaskName     = "ignoring task with invalid name %q in %s (names must match %s)"
	WarnInvalidNamespaceDir = "skipping task namespace directory %q: invalid characters"
	WarnFallbackNaming      = "task file %s has no TASK metadata, derived name %q from the filename"
	WarnNamespaceCollision  = "task %q from namespace %q collides with namespace %q, first discovered wins"
	WarnMissingDependency   = "dependency %q of task %q was not found, continuing without it"
)
