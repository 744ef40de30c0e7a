// SPDX-License-Identifier: MPL-2.0

// Package container provides a thin abstraction over container engine CLIs (Docker/Podman).
//
// The Engine interface covers the two operations creddock needs: Build, which runs
// `build -q <context>` and returns the printed image identifier, and Run, which runs
// `run --rm ... <image> [args...]` with the caller's stdio attached. Both DockerEngine
// and PodmanEngine embed BaseCLIEngine for shared argument construction and command
// execution. Commands are created through an injectable ExecCommandFunc so tests can
// substitute a fake process without spawning the real engine.
//
// Engine selection uses NewEngine(EngineType, LookPathFunc), which fails with
// EngineNotAvailableError when the engine binary is not on the search path.
package container
