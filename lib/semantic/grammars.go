package semantic

import "github.com/ibex-ipc/ibex/lib/grammar"

// --------------------------------------------------------------------------
// Capacity Constants
// --------------------------------------------------------------------------

const (
	// FileNameCapacity is the maximum length of a file name (NAME_MAX on
	// the supported POSIX-like platforms).
	FileNameCapacity = 255
	// PathCapacity is the maximum length of a path (the smallest PATH_MAX
	// style bound across the supported platforms).
	PathCapacity = 1023
)

// --------------------------------------------------------------------------
// Grammar Instantiations
// --------------------------------------------------------------------------

// FileNameGrammar accepts a single non-empty file name: entry alphabet
// only, no separators, not "." or "..", no trailing dot.
type FileNameGrammar struct{}

func (FileNameGrammar) Name() string  { return "file name" }
func (FileNameGrammar) Capacity() int { return FileNameCapacity }
func (FileNameGrammar) IsValidCharacter(c byte) bool {
	return grammar.IsValidPathEntryCharacter(c)
}
func (FileNameGrammar) IsValidContent(value string) bool {
	return grammar.IsValidFileName(value)
}

// FilePathGrammar accepts a path to a file: entry alphabet plus the
// platform separators, content must decompose into a valid file path.
type FilePathGrammar struct{}

func (FilePathGrammar) Name() string  { return "file path" }
func (FilePathGrammar) Capacity() int { return PathCapacity }
func (FilePathGrammar) IsValidCharacter(c byte) bool {
	return grammar.IsValidPathEntryCharacter(c) || grammar.IsPathSeparator(c)
}
func (FilePathGrammar) IsValidContent(value string) bool {
	return grammar.IsValidPathToFile(value)
}

// PathGrammar accepts a path to a file or a directory. The content check is
// vacuous: the grammar is a purely syntactic character restriction.
type PathGrammar struct{}

func (PathGrammar) Name() string  { return "path" }
func (PathGrammar) Capacity() int { return PathCapacity }
func (PathGrammar) IsValidCharacter(c byte) bool {
	return grammar.IsValidPathEntryCharacter(c) || grammar.IsPathSeparator(c)
}
func (PathGrammar) IsValidContent(string) bool { return true }

// --------------------------------------------------------------------------
// Typed Aliases and Constructors
// --------------------------------------------------------------------------

// FileName is a validated single file name.
type FileName = String[FileNameGrammar]

// FilePath is a validated path to a file.
type FilePath = String[FilePathGrammar]

// Path is a validated path to a file or directory.
type Path = String[PathGrammar]

// NewFileName validates source as a file name.
func NewFileName(source string) (FileName, error) {
	return New[FileNameGrammar](source)
}

// NewFilePath validates source as a path to a file.
func NewFilePath(source string) (FilePath, error) {
	return New[FilePathGrammar](source)
}

// NewPath validates source as a path to a file or directory.
func NewPath(source string) (Path, error) {
	return New[PathGrammar](source)
}
