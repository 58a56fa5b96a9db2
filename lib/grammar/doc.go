// Package grammar implements a pure, allocation-free validator for path
// entries, file names, file paths and directory paths. It decides, by
// character and structural inspection alone, whether a string is safe to use
// as a shared-resource identifier that is later turned into an OS filesystem
// path, and it does so against the intersection of the POSIX, Windows and
// embedded-filesystem rules so that a single accepted value is portable
// across all supported platforms.
//
// The package focuses on:
//   - A restricted alphabet for path entries: letters, digits and the
//     special characters '-', '.', ':' and '_'
//   - Platform-aware separator handling ('/' everywhere, additionally '\'
//     on Windows)
//   - Explicit policy for the relative components "." and ".." via the
//     RelativePathComponents flag
//   - Windows-API compatibility rules, most notably the rejection of
//     entries with a trailing dot
//
// Key Components:
//
//   - IsValidPathEntry: validates a single entry (the substring between two
//     separators) against the alphabet and the relative-component policy.
//   - IsValidFileName: validates a standalone file name. A file name may
//     never be empty, never be "." or "..", never contain a separator and
//     never end in a dot.
//   - IsValidPathToFile / IsValidPathToDirectory: validate whole paths by
//     decomposing them into entries. Consecutive separators are permitted
//     and treated as if collapsed ("//a///b" is equivalent to "/a/b").
//   - DoesEndWithPathSeparator: reports whether a string ends in a platform
//     separator, which distinguishes directory notation from file notation.
//
// All functions are pure and total: they never allocate, never panic on any
// input, and report invalidity solely through their boolean return value.
// There is no partial-validity or warning state; callers that need to know
// why a string was rejected must re-derive the reason themselves.
package grammar
