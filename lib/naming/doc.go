// Package naming derives filesystem-safe shared-resource paths from
// validated name parts. It is the consumer of the semantic string types:
// every part of a derived path (root directory, prefix, service name,
// suffix) enters the package already validated, and every composition step
// re-validates the combined result, so a derived path can be handed to the
// operating system on any supported platform without further checks.
//
// The package focuses on:
//   - A Config carrying the root directory, resource prefix and resource
//     suffix under which all of a deployment's resources live
//   - Composition of resource file names (prefix + service + suffix) and
//     full resource paths (root/file) through the semantic string
//     mutation API, which rejects any combination that would violate the
//     grammar or exceed the path capacity
package naming
