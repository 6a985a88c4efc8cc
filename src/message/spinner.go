// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

package message

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

var activeSpinner *Spinner

var sequence = []string{" ⬒ ", " ⬔ ", " ◨ ", " ◪ ", " ⬓ ", " ⬕ ", " ◧ ", " ◩ "}

// NoProgress sets whether the default spinners should use fancy animations
var NoProgress bool

// Spinner is a wrapper around pterm.SpinnerPrinter.
type Spinner struct {
	spinner   *pterm.SpinnerPrinter
	termWidth int
}

// NewProgressSpinner creates a new progress spinner.
func NewProgressSpinner(format string, a ...any) *Spinner {
	if activeSpinner != nil {
		activeSpinner.Updatef(format, a...)
		debugPrinter(2, "Active spinner already exists")
		return activeSpinner
	}

	var spinner *pterm.SpinnerPrinter
	if NoProgress {
		infof(format, a...)
	} else {
		text := pterm.Sprintf(format, a...)
		spinner, _ = pterm.DefaultSpinner.
			WithRemoveWhenDone(false).
			WithSequence(sequence...).
			Start(text)
	}

	activeSpinner = &Spinner{
		spinner:   spinner,
		termWidth: pterm.GetTerminalWidth(),
	}

	return activeSpinner
}

// Write the given text to the spinner.
func (p *Spinner) Write(raw []byte) (int, error) {
	size := len(raw)
	if NoProgress {
		os.Stderr.Write(raw)
		return size, nil
	}

	for _, line := range strings.Split(strings.TrimRight(string(raw), "\n"), "\n") {
		text := pterm.Sprintf("     %s", line)
		// Clear the current line with the ANSI escape code
		pterm.Fprinto(p.spinner.Writer, "\033[K")
		pterm.Fprintln(p.spinner.Writer, text)
	}

	return size, nil
}

// Updatef updates the spinner text.
func (p *Spinner) Updatef(format string, a ...any) {
	if NoProgress {
		debugPrinter(2, fmt.Sprintf(format, a...))
		return
	}

	pterm.Fprinto(p.spinner.Writer, strings.Repeat(" ", pterm.GetTerminalWidth()))
	text := pterm.Sprintf(format, a...)
	p.spinner.UpdateText(text)
}

// Close stops the spinner.
func (p *Spinner) Close() error {
	var err error
	if p.spinner != nil && p.spinner.IsActive {
		err = p.spinner.Stop()
	}
	activeSpinner = nil
	return err
}

// Successf prints a success message with the spinner and stops it.
func (p *Spinner) Successf(format string, a ...any) {
	if p.spinner != nil {
		text := pterm.Sprintf(format, a...)
		p.spinner.Success(text)
	} else {
		successf(format, a...)
	}
	p.Close()
}

// Failf prints an error message with the spinner and stops it.
func (p *Spinner) Failf(format string, a ...any) {
	if p.spinner != nil {
		text := pterm.Sprintf(format, a...)
		p.spinner.Fail(text)
	} else {
		errorf(format, a...)
	}
	p.Close()
}
