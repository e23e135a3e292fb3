// Package config defines the wretchkit configuration and its layered loading.
//
// Precedence, highest first:
//
//  1. Command-line flags (applied by pkg/cli)
//  2. Environment variables (WRETCHKIT_* prefix)
//  3. Config file (--config, or .wretchkit.yaml in the working directory)
//  4. Default values
//
// Config.Sources records where each value came from, keyed by its YAML path
// (for example "mock.port"), so `wretchkit config` can explain the result.
package config
