// SPDX-License-Identifier: Apache-2.0

// Package config loads, merges and validates the configuration of the
// GridBoard client core.
//
// Values are collected from three sources and merged in priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables (caarlos0/env)
//  2. Command-line flags
//  3. An optional JSON file, whose path comes from sources 1 and 2
//
// The merged [StructuredConfig] is narrowed to a [ClientConfig] view via
// [GetClientConfig], which also applies client defaults and validation.
package config
