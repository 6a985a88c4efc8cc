// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/defenseunicorns/pkg/exec"
	"github.com/defenseunicorns/pkg/helpers/v2"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/message"
	"github.com/wrangle-dev/wrangle/src/pkg/audit"
	"github.com/wrangle-dev/wrangle/src/pkg/sanitize"
	"github.com/wrangle-dev/wrangle/src/pkg/utils"
	"github.com/wrangle-dev/wrangle/src/pkg/validate"
	"github.com/wrangle-dev/wrangle/src/pkg/vars"
	"github.com/wrangle-dev/wrangle/src/types"
)

var envKeyChars = regexp.MustCompile(`[^A-Z0-9]+`)

// executeScript runs one task file as an external process with the merged
// configuration injected through the environment. The script's own directory
// becomes the working directory for the duration of the task and the prior
// directory is restored unconditionally. The script signals success or
// failure solely through its exit status; a body without an explicit exit
// falls through to the status of its last command, which shell semantics
// already provide.
func (r *Runner) executeScript(resolvedName string, task types.TaskDescriptor) error {
	// The path check runs immediately before the file becomes executable,
	// never earlier.
	scriptPath, err := validate.ScriptPath(task.ScriptPath, r.opts.ProjectRoot)
	if err != nil {
		return err
	}
	scriptDir := filepath.Dir(scriptPath)

	env, err := r.taskEnvironment(resolvedName, task, scriptDir)
	if err != nil {
		return err
	}

	previousDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("unable to determine the working directory: %w", err)
	}
	if err := os.Chdir(scriptDir); err != nil {
		return fmt.Errorf("unable to enter task directory %s: %w", scriptDir, err)
	}
	defer func() {
		// Restore the prior working directory even when the task fails.
		_ = os.Chdir(previousDir)
	}()

	spinner := message.NewProgressSpinner("Running task %q", resolvedName)

	r.audit.Info(audit.EventCommandInvoked, "sh %s", scriptPath)
	stdOut, stdErr, err := exec.CmdWithContext(context.TODO(), exec.Config{Dir: scriptDir, Env: env}, "sh", scriptPath)

	r.surfaceOutput(spinner, stdOut)
	r.surfaceOutput(spinner, stdErr)

	if err != nil {
		spinner.Failf("Task %q failed", resolvedName)
		return fmt.Errorf("task %q failed: %w", resolvedName, err)
	}

	spinner.Successf("Completed task %q", resolvedName)
	return nil
}

// taskEnvironment flattens the merged configuration view plus the
// task-specific facts into WRANGLE_VAR_* environment variables.
func (r *Runner) taskEnvironment(resolvedName string, task types.TaskDescriptor, scriptDir string) ([]string, error) {
	builtins := vars.Builtins{
		ProjectRoot:       r.opts.ProjectRoot,
		TaskDirectory:     r.opts.TaskDirectory,
		TaskDirectoryPath: filepath.Join(r.opts.ProjectRoot, r.opts.TaskDirectory),
		TaskName:          resolvedName,
		Namespace:         task.Namespace,
		ScriptDirectory:   scriptDir,
	}
	if root, ok := utils.GitRoot(r.opts.ProjectRoot); ok {
		builtins.GitRoot = root
	}
	if branch, ok := utils.GitBranch(r.opts.ProjectRoot); ok {
		builtins.GitBranch = branch
	}

	view, err := r.store.MergedView(builtins)
	if err != nil {
		return nil, err
	}

	keyed := helpers.TransformMapKeys(view, envKey)
	env := make([]string, 0, len(keyed))
	for key, value := range keyed {
		env = append(env, fmt.Sprintf("%s_VAR_%s=%s", strings.ToUpper(config.EnvPrefix), key, value))
	}
	return env, nil
}

// surfaceOutput sanitizes captured process output before showing it.
func (r *Runner) surfaceOutput(spinner *message.Spinner, raw string) {
	if raw == "" {
		return
	}
	result := sanitize.Output(raw)
	for _, warning := range result.Warnings {
		message.SLog.Warn(warning)
	}
	if result.Text != "" {
		_, _ = spinner.Write([]byte(result.Text))
	}
}

// envKey turns a dotted variable path into an environment key segment,
// e.g. "Azure.SubscriptionId" becomes "AZURE_SUBSCRIPTIONID".
func envKey(path string) string {
	return envKeyChars.ReplaceAllString(strings.ToUpper(path), "_")
}
