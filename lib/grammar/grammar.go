package grammar

// --------------------------------------------------------------------------
// Relative Component Policy
// --------------------------------------------------------------------------

// RelativePathComponents controls whether the relative components "." and
// ".." are accepted as a path entry.
type RelativePathComponents int

const (
	// RelativePathComponentsAccept accepts "." and ".." as entries. This is
	// the policy for entries inside a directory path.
	RelativePathComponentsAccept RelativePathComponents = iota
	// RelativePathComponentsReject rejects "." and "..". This is the policy
	// for standalone file names, where a relative component is meaningless.
	RelativePathComponentsReject
)

func (r RelativePathComponents) String() string {
	switch r {
	case RelativePathComponentsAccept:
		return "Accept"
	case RelativePathComponentsReject:
		return "Reject"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Character Classes
// --------------------------------------------------------------------------

// IsValidPathEntryCharacter reports whether c may appear in a path entry.
// The allowed alphabet is the portable intersection of the POSIX, Windows
// and embedded filesystem rules: letters, digits and '-', '.', ':', '_'.
// Separators are not entry characters.
func IsValidPathEntryCharacter(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == ':' || c == '_':
		return true
	default:
		return false
	}
}

// IsPathSeparator reports whether c is a path separator on the current
// platform ('/' everywhere, additionally '\' on Windows).
func IsPathSeparator(c byte) bool {
	for i := 0; i < len(pathSeparators); i++ {
		if pathSeparators[i] == c {
			return true
		}
	}
	return false
}

// PathSeparators returns the separator characters of the current platform.
func PathSeparators() string {
	return pathSeparators
}

// --------------------------------------------------------------------------
// Entry and File Name Validation
// --------------------------------------------------------------------------

// IsValidPathEntry reports whether entry is a valid single path entry, i.e.
// a valid substring between two separators (or a whole separator-free
// string).
//
// The relative components "." and ".." are special-cased before any
// character scan: they are valid iff relativeComponents is
// RelativePathComponentsAccept. Every other entry must consist solely of
// valid entry characters and must not end in a dot. The trailing-dot rule
// exists for Windows-API compatibility: some filesystems accept "file."
// while the Windows SDK silently strips the dot, which would make two
// distinct accepted names collide. An empty entry is valid, it represents
// "no content between two separators".
func IsValidPathEntry(entry string, relativeComponents RelativePathComponents) bool {
	// Relative components are decided by policy alone. Note that this
	// intentionally only matches the exact literals: an entry like "..."
	// falls through to the general scan and is then rejected by the
	// trailing-dot rule.
	if entry == "." || entry == ".." {
		return relativeComponents == RelativePathComponentsAccept
	}

	for i := 0; i < len(entry); i++ {
		if !IsValidPathEntryCharacter(entry[i]) {
			return false
		}
	}

	// Trailing dot is always invalid for non-literal entries.
	if len(entry) > 0 && entry[len(entry)-1] == '.' {
		return false
	}

	return true
}

// IsValidFileName reports whether name is a valid standalone file name. A
// file name must be non-empty, must not be "." or "..", must not contain a
// separator and must not end in a dot.
func IsValidFileName(name string) bool {
	if len(name) == 0 {
		return false
	}
	return IsValidPathEntry(name, RelativePathComponentsReject)
}

// --------------------------------------------------------------------------
// Path Validation
// --------------------------------------------------------------------------

// DoesEndWithPathSeparator reports whether name is non-empty and its last
// character is a platform path separator.
func DoesEndWithPathSeparator(name string) bool {
	return len(name) > 0 && IsPathSeparator(name[len(name)-1])
}

// IsValidPathToFile reports whether name is a valid path to a file.
//
// A path that ends in a separator denotes a directory and is rejected, as
// is the empty path. The string is split at the last separator: the suffix
// must be a valid file name and the prefix, if non-empty, must be a valid
// path to a directory. Consecutive separators are permitted and normalized
// away by this decomposition, so "//a///b" is accepted whenever "/a/b" is.
func IsValidPathToFile(name string) bool {
	if len(name) == 0 || DoesEndWithPathSeparator(name) {
		return false
	}

	sep := lastSeparatorIndex(name)
	if sep < 0 {
		return IsValidFileName(name)
	}

	if !IsValidFileName(name[sep+1:]) {
		return false
	}

	prefix := name[:sep]
	return len(prefix) == 0 || IsValidPathToDirectory(prefix)
}

// IsValidPathToDirectory reports whether name is a valid path to a
// directory.
//
// The string is walked separator by separator. Every entry before a
// separator must be empty (consecutive separators), a valid file name, or
// one of the relative components "." and "..". The final entry after the
// last separator must be a valid path entry under the accepting
// relative-component policy, so a directory path may end in "." or ".."
// (or in a separator, leaving an empty final entry).
func IsValidPathToDirectory(name string) bool {
	if len(name) == 0 {
		return false
	}

	rest := name
	for {
		sep := firstSeparatorIndex(rest)
		if sep < 0 {
			return IsValidPathEntry(rest, RelativePathComponentsAccept)
		}

		entry := rest[:sep]
		if len(entry) != 0 && !IsValidFileName(entry) && entry != "." && entry != ".." {
			return false
		}
		rest = rest[sep+1:]
	}
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// firstSeparatorIndex returns the index of the first platform separator in
// s, or -1 if s contains none.
func firstSeparatorIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if IsPathSeparator(s[i]) {
			return i
		}
	}
	return -1
}

// lastSeparatorIndex returns the index of the last platform separator in s,
// or -1 if s contains none.
func lastSeparatorIndex(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if IsPathSeparator(s[i]) {
			return i
		}
	}
	return -1
}
