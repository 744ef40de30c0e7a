// SPDX-License-Identifier: MPL-2.0

// Package config resolves the per-invocation configuration using Viper.
//
// Every value comes from command-line flags; the ambient keys "engine" and
// "verbose" may additionally be set through CREDDOCK_ENGINE and CREDDOCK_VERBOSE.
// No configuration file is read. When --adc is omitted the platform default
// ADC location is computed from an explicit GOOS and environment lookup.
package config
