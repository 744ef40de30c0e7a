// SPDX-License-Identifier: MPL-2.0

// Package credentials locates the Google Cloud application-default-credentials
// (ADC) file on the host and canonicalizes it for bind-mounting.
//
// DefaultPath is a pure function of an OS name and an environment lookup so
// callers (and tests) can supply synthetic environments deterministically.
package credentials
