// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package sanitize filters captured text from external processes before it is
// surfaced to the user or logs.
package sanitize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
)

const (
	// DefaultMaxLength is the character budget before truncation
	DefaultMaxLength = 100_000
	// DefaultMaxLines is the line budget before truncation
	DefaultMaxLines = 1000

	lengthNotice = "\n[output truncated: length limit exceeded]"
	linesNotice  = "[output truncated: line limit exceeded]"
)

// Result is sanitized text plus any warnings raised while cleaning it.
type Result struct {
	Text     string
	Warnings []string
}

// Output sanitizes text with the default limits.
func Output(text string) Result {
	return OutputN(text, DefaultMaxLength, DefaultMaxLines)
}

// OutputN strips ANSI sequences and control characters, then truncates to the
// given limits. It is idempotent: sanitizing already-clean or already-truncated
// text yields the same text with no new warnings.
func OutputN(text string, maxLength, maxLines int) Result {
	var result Result
	if text == "" {
		return result
	}

	if strings.ContainsRune(text, 0) {
		result.Warnings = append(result.Warnings, "output contained null bytes, it may be binary content")
	}

	text = stripansi.Strip(text)
	text = stripControl(text)

	if lines := strings.Split(text, "\n"); len(lines) > maxLines {
		// Keep room for the notice line so a second pass sees exactly
		// maxLines lines and leaves the text alone.
		text = strings.Join(lines[:maxLines-1], "\n") + "\n" + linesNotice
		result.Warnings = append(result.Warnings, fmt.Sprintf("output exceeded the %d line limit and was truncated", maxLines))
	}

	if len(text) > maxLength {
		cut := maxLength - len(lengthNotice)
		if cut < 0 {
			cut = 0
		}
		// Never split a multibyte rune: a partial byte would mutate on the
		// next pass and break idempotence.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + lengthNotice
		result.Warnings = append(result.Warnings, fmt.Sprintf("output exceeded the %d character limit and was truncated", maxLength))
	}

	result.Text = text
	return result
}

// stripControl removes standalone control characters outside \n \r \t,
// including lone escapes, delete, and the C1 range.
func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, text)
}
