package grammar

import "testing"

// TestIsValidPathEntryRelativeComponents tests the policy handling for the
// literal "." and ".." entries
func TestIsValidPathEntryRelativeComponents(t *testing.T) {
	for _, entry := range []string{".", ".."} {
		if !IsValidPathEntry(entry, RelativePathComponentsAccept) {
			t.Errorf("entry %q should be valid under Accept", entry)
		}
		if IsValidPathEntry(entry, RelativePathComponentsReject) {
			t.Errorf("entry %q should be invalid under Reject", entry)
		}
	}
}

// TestIsValidPathEntryAlphabet tests the allowed character set
func TestIsValidPathEntryAlphabet(t *testing.T) {
	valid := []string{
		"", // empty entry represents "no content between separators"
		"a", "Z", "0", "file", "some-file", "some_file", "some:file",
		"v1.2.3.tar", "ABCxyz0123456789-._:",
	}
	for _, entry := range valid {
		if !IsValidPathEntry(entry, RelativePathComponentsReject) {
			t.Errorf("entry %q should be valid", entry)
		}
	}

	invalid := []string{
		"file name", "file\tname", "file\x00", "file/name", "über",
		"*", "fu!", "fu?", "(fu)", "fu,bar", "fu;bar", "~fu", "fu\x7f",
	}
	for _, entry := range invalid {
		if IsValidPathEntry(entry, RelativePathComponentsAccept) {
			t.Errorf("entry %q should be invalid", entry)
		}
	}
}

// TestIsValidPathEntryTrailingDot tests the Windows-API trailing dot rule
func TestIsValidPathEntryTrailingDot(t *testing.T) {
	invalid := []string{"file.", "a..", "...", "....", "x......"}
	for _, entry := range invalid {
		// The rule applies under both policies: only the exact literals "."
		// and ".." are exempt.
		if IsValidPathEntry(entry, RelativePathComponentsAccept) {
			t.Errorf("entry %q should be invalid under Accept", entry)
		}
		if IsValidPathEntry(entry, RelativePathComponentsReject) {
			t.Errorf("entry %q should be invalid under Reject", entry)
		}
	}
}

// TestIsValidFileName tests standalone file name validation
func TestIsValidFileName(t *testing.T) {
	valid := []string{".hidden", "..hidden", "file", "file.txt", "a.b.c", ":", "-"}
	for _, name := range valid {
		if !IsValidFileName(name) {
			t.Errorf("file name %q should be valid", name)
		}
	}

	invalid := []string{"", ".", "..", "dot.", "dir/file", "file ", " file", "fu bar"}
	for _, name := range invalid {
		if IsValidFileName(name) {
			t.Errorf("file name %q should be invalid", name)
		}
	}
}

// TestDoesEndWithPathSeparator tests separator suffix detection
func TestDoesEndWithPathSeparator(t *testing.T) {
	if DoesEndWithPathSeparator("") {
		t.Error("empty string does not end with a separator")
	}
	if DoesEndWithPathSeparator("some/file") {
		t.Error("\"some/file\" does not end with a separator")
	}
	for _, name := range []string{"/", "some/dir/", "//"} {
		if !DoesEndWithPathSeparator(name) {
			t.Errorf("%q should end with a separator", name)
		}
	}
}

// TestIsValidPathToFile tests file path validation
func TestIsValidPathToFile(t *testing.T) {
	valid := []string{
		"file", "/file", "dir/file", "/dir/file", "./file", "../file",
		"a/b/c/d", "a/./b", "a/../b", "/a/../file.txt", ".hidden",
	}
	for _, name := range valid {
		if !IsValidPathToFile(name) {
			t.Errorf("file path %q should be valid", name)
		}
	}

	invalid := []string{
		"", "/", "/a/", "dir/", "a/..", "a/.", ".", "..", "a/file.",
		"dir/fu bar", "fu bar/file",
	}
	for _, name := range invalid {
		if IsValidPathToFile(name) {
			t.Errorf("file path %q should be invalid", name)
		}
	}
}

// TestIsValidPathToFileSeparatorNormalization tests that consecutive
// separators behave like a single one
func TestIsValidPathToFileSeparatorNormalization(t *testing.T) {
	pairs := [][2]string{
		{"/a/b", "//a//b"},
		{"/a/b", "/a///b"},
		{"a/b", "a////b"},
	}
	for _, pair := range pairs {
		single, multi := IsValidPathToFile(pair[0]), IsValidPathToFile(pair[1])
		if single != multi {
			t.Errorf("%q and %q should validate identically, got %t and %t",
				pair[0], pair[1], single, multi)
		}
		if !single {
			t.Errorf("file path %q should be valid", pair[0])
		}
	}
}

// TestIsValidPathToDirectory tests directory path validation
func TestIsValidPathToDirectory(t *testing.T) {
	valid := []string{
		".", "..", "/", "dir", "dir/", "/dir", "/dir/", "a/b/c",
		"a/..", "a/.", "../..", "./..", "//a//", "a//b",
	}
	for _, name := range valid {
		if !IsValidPathToDirectory(name) {
			t.Errorf("directory path %q should be valid", name)
		}
	}

	invalid := []string{
		"", "dir./sub", "a/dot./b", "fu bar", "a/fu bar", "a/...",
	}
	for _, name := range invalid {
		if IsValidPathToDirectory(name) {
			t.Errorf("directory path %q should be invalid", name)
		}
	}
}

// TestValidationIsPure tests that repeated calls with identical input agree
func TestValidationIsPure(t *testing.T) {
	inputs := []string{"", ".", "a/..", "/a///b", "dot.", "dir/"}
	for _, name := range inputs {
		first := IsValidPathToDirectory(name)
		for i := 0; i < 3; i++ {
			if IsValidPathToDirectory(name) != first {
				t.Fatalf("IsValidPathToDirectory(%q) is not stable", name)
			}
		}
	}
}
