// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes GOOS name constants and classifies an operating system into
// the families creddock knows how to locate credentials on.
package platform
