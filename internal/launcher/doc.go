// SPDX-License-Identifier: MPL-2.0

// Package launcher runs the two-step creddock pipeline: build the image from
// the configured context, then run it with the host credentials bind-mounted
// read-only and the Google Cloud environment variables exported.
//
// The container engine is injected, so the pipeline can be exercised with a
// fake engine that never spawns a process.
package launcher
