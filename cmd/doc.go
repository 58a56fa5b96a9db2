// Package cmd implements the command-line interface for the ibex naming
// and blackboard toolkit. It provides a hierarchical command structure for
// validating resource name strings, deriving shared-resource paths and
// working with blackboard snapshot files.
//
// The package is organized into several subpackages:
//
//   - validate: Commands for validating file names, paths and path entries
//   - name: Commands for deriving shared-resource paths from validated parts
//   - bb: Commands for inspecting and mutating blackboard snapshot files
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See ibex -help for a list of all commands.
package cmd
