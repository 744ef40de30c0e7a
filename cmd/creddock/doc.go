// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the creddock command line: flag parsing, logger
// setup, error rendering and exit-code mapping around the launcher.
package cmd
