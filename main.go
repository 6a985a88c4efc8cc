// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package main is the entrypoint for the wrangle binary.
package main

import (
	"github.com/wrangle-dev/wrangle/src/cmd"
)

func main() {
	cmd.Execute()
}
