// Package semantic provides bounded, grammar-validated ASCII strings for
// shared-resource naming. A semantic string couples a byte buffer of fixed
// maximum capacity with a Grammar, the pair of predicates (character
// validity, content validity) that defines which values the string may
// hold. Every successfully constructed instance is valid by construction
// and stays valid for its whole lifetime: mutating operations build a
// candidate value, re-validate it against both predicates, and either
// commit it atomically or leave the prior value untouched.
//
// The package focuses on:
//   - A generic String[G] type parametrized by a Grammar, mirroring the
//     factory-validates-then-constructs pattern used across the library
//   - A two-valued error taxonomy (invalid content, exceeds maximum
//     length) surfaced through the typed Error with a RetCode
//   - Byte-wise total ordering consistent with strcmp extended by length
//
// Instantiations:
//
//   - FileName: a single file name. Content must be non-empty, must not be
//     "." or "..", must not end in a dot; separators are forbidden by the
//     character predicate alone. Capacity 255.
//   - FilePath: a path to a file. Characters are the entry alphabet plus
//     the platform separators; content must be a valid path to a file.
//     Capacity 1023.
//   - Path: a path to a file or a directory. Same character rule as
//     FilePath, but the content predicate is vacuous, making Path a purely
//     syntactic restriction. Capacity 1023.
//
// These types are consumed by the naming layer to guarantee that any
// derived shared-memory resource path is portable across the supported
// platforms. See the grammar package for the underlying validation rules.
package semantic
