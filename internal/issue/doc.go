// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. The catalog maps well-known failure modes (engine missing,
// credentials missing, unsupported host) to Markdown guidance rendered with glamour.
package issue
