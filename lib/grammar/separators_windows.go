//go:build windows

package grammar

// pathSeparators holds the separator characters of the current platform.
// Windows additionally accepts the backslash.
const pathSeparators = "/\\"
