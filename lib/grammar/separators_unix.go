//go:build !windows

package grammar

// pathSeparators holds the separator characters of the current platform.
const pathSeparators = "/"
