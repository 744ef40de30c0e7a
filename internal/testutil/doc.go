// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail the test
// immediately on setup errors, reducing boilerplate around temp files,
// environment variables and container-backed tests.
package testutil
