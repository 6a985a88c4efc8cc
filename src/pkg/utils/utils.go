// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package utils provides utility fns for wrangle
package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/defenseunicorns/pkg/exec"
	"github.com/pterm/pterm"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/message"
)

// UseLogFile writes output to stderr and a logFile.
func UseLogFile() {
	logDir := ""
	if config.TempDirectory != "" {
		var err error
		if logDir, err = MakeTempDir(config.TempDirectory); err != nil {
			message.SLog.Warn(fmt.Sprintf("Error creating temporary directory: %s", err.Error()))
			return
		}
	}

	logFile, err := message.UseLogFile(logDir)
	if err != nil {
		message.SLog.Warn(fmt.Sprintf("Error saving a log file to a temporary directory: %s", err.Error()))
		return
	}

	logWriter := io.MultiWriter(os.Stderr, logFile)
	pterm.SetDefaultOutput(logWriter)
	message.SLog.Info(fmt.Sprintf("Saving log file to %s", message.LogFileLocation()))
}

// MakeTempDir creates a temp directory with the wrangle- prefix.
func MakeTempDir(basePath string) (string, error) {
	if basePath != "" {
		if err := os.MkdirAll(basePath, 0o700); err != nil {
			return "", err
		}
	}

	tmp, err := os.MkdirTemp(basePath, "wrangle-")
	if err != nil {
		return "", err
	}
	message.SLog.Debug(fmt.Sprintf("Using temporary directory: %s", tmp))

	return tmp, nil
}

// GitRoot returns the repository root of dir, if dir is inside a git work
// tree.
func GitRoot(dir string) (string, bool) {
	out, _, err := exec.Cmd(exec.Config{Dir: dir}, "git", "rev-parse", "--show-toplevel")
	root := strings.TrimSpace(out)
	if err != nil || root == "" {
		return "", false
	}
	return root, true
}

// GitBranch returns the current branch name of dir, if discoverable.
func GitBranch(dir string) (string, bool) {
	out, _, err := exec.Cmd(exec.Config{Dir: dir}, "git", "rev-parse", "--abbrev-ref", "HEAD")
	branch := strings.TrimSpace(out)
	if err != nil || branch == "" {
		return "", false
	}
	return branch, true
}
