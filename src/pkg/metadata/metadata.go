// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package metadata extracts task names, descriptions, and dependencies from
// the comment header of a task file.
package metadata

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/types"
)

// Parsed is the typed result of reading a task file header.
type Parsed struct {
	// Names holds the canonical name first, followed by any aliases
	Names []string
	// Description may be empty, absence is not an error
	Description string
	// Dependencies may be empty, absence is not an error
	Dependencies []string
	// Source tags whether the name was explicit or derived from the filename
	Source types.NameSource
}

var (
	taskLine        = regexp.MustCompile(`^#\s*TASK:\s*(.*)$`)
	descriptionLine = regexp.MustCompile(`^#\s*DESCRIPTION:\s*(.*)$`)
	dependsLine     = regexp.MustCompile(`^#\s*DEPENDS:\s*(.*)$`)

	verbPrefix  = regexp.MustCompile(`(?i)^invoke[-_]?`)
	camelBorder = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	wordBreaks  = regexp.MustCompile(`[_\s]+`)
	hyphenRuns  = regexp.MustCompile(`-+`)
)

// Parse reads at most the first 30 lines of a task file and extracts its
// metadata. fileName is the base name of the file, used for fallback naming
// when no TASK line exists.
func Parse(r io.Reader, fileName string) (Parsed, error) {
	var parsed Parsed

	scanner := bufio.NewScanner(r)
	for lines := 0; lines < config.MetadataMaxLines && scanner.Scan(); lines++ {
		line := scanner.Text()

		if m := taskLine.FindStringSubmatch(line); m != nil {
			names := splitList(m[1])
			if len(names) == 0 {
				return Parsed{}, fmt.Errorf("task file %s has a TASK line with no names", fileName)
			}
			parsed.Names = names
			parsed.Source = types.NameSourceExplicit
			continue
		}
		if m := descriptionLine.FindStringSubmatch(line); m != nil {
			parsed.Description = strings.TrimSpace(m[1])
			continue
		}
		if m := dependsLine.FindStringSubmatch(line); m != nil {
			parsed.Dependencies = splitList(m[1])
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return Parsed{}, fmt.Errorf("unable to read task file %s: %w", fileName, err)
	}

	if len(parsed.Names) == 0 {
		parsed.Names = []string{DeriveName(fileName)}
		parsed.Source = types.NameSourceDerived
	}

	return parsed, nil
}

// DeriveName derives a task name from a file's base identifier: the extension
// and a leading "invoke" verb are stripped, case and word boundaries become
// hyphens, and the result is lower-cased. "Invoke-Build.sh" yields "build"
// and "InvokeTestOutput.sh" yields "test-output".
func DeriveName(fileName string) string {
	name := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	name = verbPrefix.ReplaceAllString(name, "")
	name = camelBorder.ReplaceAllString(name, "$1-$2")
	name = wordBreaks.ReplaceAllString(name, "-")
	name = hyphenRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	return strings.ToLower(name)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
