// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package audit appends security-relevant events to an opt-in, append-only
// log file under the project root. Logging failures are swallowed: the audit
// trail must never abort task execution.
package audit

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/wrangle-dev/wrangle/src/config"
)

const (
	logDirName  = ".wrangle"
	logFileName = "audit.log"
)

// EventType classifies one audit log entry.
type EventType string

const (
	// EventCustomTaskDirectory records use of a non-default task directory
	EventCustomTaskDirectory EventType = "custom-task-directory"
	// EventFileCreated records creation of a new task file
	EventFileCreated EventType = "file-created"
	// EventTaskStart records the start of a task execution
	EventTaskStart EventType = "task-start"
	// EventTaskComplete records the completion of a task execution
	EventTaskComplete EventType = "task-complete"
	// EventCommandInvoked records an external command invocation
	EventCommandInvoked EventType = "command-invoked"
)

// Logger writes audit events for one invocation. The zero value is a no-op.
type Logger struct {
	enabled bool
	path    string
	actor   string
}

// New returns a logger rooted at the project. It is a no-op unless the
// WRANGLE_AUDIT_LOG environment toggle is set.
func New(projectRoot string) *Logger {
	if !config.AuditEnabled() {
		return &Logger{}
	}

	dir := filepath.Join(projectRoot, logDirName)
	// Failures here are deliberately ignored, per the no-abort contract.
	_ = os.MkdirAll(dir, 0o755)
	// Keep the audit directory out of version control.
	gitignore := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		_ = os.WriteFile(gitignore, []byte("*\n"), 0o644)
	}

	return &Logger{
		enabled: true,
		path:    filepath.Join(dir, logFileName),
		actor:   actor(),
	}
}

// Enabled reports whether events are being recorded.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Info records an informational event.
func (l *Logger) Info(event EventType, format string, a ...any) {
	l.append("INFO", event, fmt.Sprintf(format, a...))
}

// Warn records a warning event.
func (l *Logger) Warn(event EventType, format string, a ...any) {
	l.append("WARN", event, fmt.Sprintf(format, a...))
}

func (l *Logger) append(severity string, event EventType, details string) {
	if !l.enabled {
		return
	}

	line := fmt.Sprintf("%s | %s | %s | %s | %s\n",
		time.Now().UTC().Format(time.RFC3339), severity, l.actor, event, details)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line)
}

func actor() string {
	name := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return name + "@" + host
}
