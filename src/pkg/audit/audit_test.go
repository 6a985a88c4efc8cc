// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerIsNoOpWithoutToggle(t *testing.T) {
	t.Setenv("WRANGLE_AUDIT_LOG", "")
	root := t.TempDir()

	logger := New(root)
	require.False(t, logger.Enabled())
	logger.Info(EventTaskStart, "task %s starting", "build")

	_, err := os.Stat(filepath.Join(root, logDirName, logFileName))
	require.True(t, os.IsNotExist(err))
}

func TestLoggerAppendsStructuredLines(t *testing.T) {
	t.Setenv("WRANGLE_AUDIT_LOG", "1")
	root := t.TempDir()

	logger := New(root)
	require.True(t, logger.Enabled())
	logger.Info(EventTaskStart, "task %s starting", "build")
	logger.Warn(EventTaskComplete, "task %s failed", "build")

	content, err := os.ReadFile(filepath.Join(root, logDirName, logFileName))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[0], " | ")
	require.Len(t, fields, 5)
	require.Equal(t, "INFO", fields[1])
	require.Contains(t, fields[2], "@")
	require.Equal(t, string(EventTaskStart), fields[3])
	require.Equal(t, "task build starting", fields[4])

	require.Contains(t, lines[1], "WARN")
	require.Contains(t, lines[1], string(EventTaskComplete))
}

func TestLoggerKeepsAuditDirOutOfVersionControl(t *testing.T) {
	t.Setenv("WRANGLE_AUDIT_LOG", "true")
	root := t.TempDir()

	New(root)

	content, err := os.ReadFile(filepath.Join(root, logDirName, ".gitignore"))
	require.NoError(t, err)
	require.Equal(t, "*\n", string(content))
}

func TestLoggerSwallowsWriteFailures(t *testing.T) {
	t.Setenv("WRANGLE_AUDIT_LOG", "1")

	logger := &Logger{enabled: true, path: filepath.Join(t.TempDir(), "missing", "audit.log"), actor: "a@b"}
	// Must not panic or surface the error.
	logger.Info(EventTaskStart, "task %s starting", "build")
}
