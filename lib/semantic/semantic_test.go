package semantic

import (
	"errors"
	"strings"
	"testing"
)

// requireCode asserts that err is a *Error carrying the expected code
func requireCode(t *testing.T, err error, code RetCode) {
	t.Helper()

	var semErr *Error
	if !errors.As(err, &semErr) {
		t.Fatalf("expected a *semantic.Error, got %v", err)
	}
	if semErr.Code != code {
		t.Fatalf("expected code %d, got %d (%v)", code, semErr.Code, err)
	}
}

// TestNewFileName tests file name construction
func TestNewFileName(t *testing.T) {
	valid := []string{"file", ".hidden", "file.txt", "a-b_c:d"}
	for _, source := range valid {
		name, err := NewFileName(source)
		if err != nil {
			t.Errorf("NewFileName(%q) failed: %v", source, err)
			continue
		}
		if name.String() != source {
			t.Errorf("round trip failed: got %q, want %q", name.String(), source)
		}
	}

	invalid := []string{"", ".", "..", "dot.", "dir/file", "fu bar"}
	for _, source := range invalid {
		if _, err := NewFileName(source); err == nil {
			t.Errorf("NewFileName(%q) should fail", source)
		} else {
			requireCode(t, err, RetCInvalidContent)
		}
	}
}

// TestNewFileNameCapacity tests the bounded capacity check
func TestNewFileNameCapacity(t *testing.T) {
	atCapacity := strings.Repeat("a", FileNameCapacity)
	if _, err := NewFileName(atCapacity); err != nil {
		t.Errorf("name of length %d should be accepted: %v", FileNameCapacity, err)
	}

	_, err := NewFileName(atCapacity + "a")
	if err == nil {
		t.Fatal("name exceeding capacity should be rejected")
	}
	requireCode(t, err, RetCExceedsMaximumLength)
}

// TestNewFilePath tests file path construction
func TestNewFilePath(t *testing.T) {
	valid := []string{"file", "/dir/file", "//a//b", "a/../file"}
	for _, source := range valid {
		path, err := NewFilePath(source)
		if err != nil {
			t.Errorf("NewFilePath(%q) failed: %v", source, err)
			continue
		}
		if path.String() != source {
			t.Errorf("round trip failed: got %q, want %q", path.String(), source)
		}
	}

	invalid := []string{"", "/dir/", "a/..", "fu bar/file"}
	for _, source := range invalid {
		if _, err := NewFilePath(source); err == nil {
			t.Errorf("NewFilePath(%q) should fail", source)
		}
	}
}

// TestNewPath tests that Path is a purely syntactic restriction
func TestNewPath(t *testing.T) {
	// Both file and directory notation are acceptable.
	valid := []string{"file", "/dir/", ".", "..", "/", "a/.."}
	for _, source := range valid {
		if _, err := NewPath(source); err != nil {
			t.Errorf("NewPath(%q) failed: %v", source, err)
		}
	}

	// The character predicate still applies.
	if _, err := NewPath("fu bar"); err == nil {
		t.Error("NewPath(\"fu bar\") should fail")
	}
	requireCodeForPath(t, "fu bar")
}

func requireCodeForPath(t *testing.T, source string) {
	t.Helper()
	_, err := NewPath(source)
	requireCode(t, err, RetCInvalidContent)
}

// TestAppend tests the append operation and its atomicity on failure
func TestAppend(t *testing.T) {
	name, err := NewFileName("file")
	if err != nil {
		t.Fatal(err)
	}

	if err := name.Append(".txt"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if name.String() != "file.txt" {
		t.Errorf("expected %q, got %q", "file.txt", name.String())
	}

	// A failing append must leave the prior value untouched.
	before := name.String()
	if err := name.Append("."); err == nil {
		t.Fatal("appending a trailing dot should fail")
	}
	if name.String() != before {
		t.Errorf("value changed on failed append: %q -> %q", before, name.String())
	}

	if err := name.Append("/sub"); err == nil {
		t.Fatal("appending a separator to a file name should fail")
	}
	if name.String() != before {
		t.Errorf("value changed on failed append: %q -> %q", before, name.String())
	}
}

// TestInsert tests the insert operation
func TestInsert(t *testing.T) {
	name, err := NewFileName("filetxt")
	if err != nil {
		t.Fatal(err)
	}

	if err := name.Insert(4, ".", 1); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if name.String() != "file.txt" {
		t.Errorf("expected %q, got %q", "file.txt", name.String())
	}

	// Partial insert: only count bytes of value are used.
	if err := name.Insert(0, "my-ignored", 3); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if name.String() != "my-file.txt" {
		t.Errorf("expected %q, got %q", "my-file.txt", name.String())
	}

	// Out-of-range positions are rejected without mutation.
	before := name.String()
	if err := name.Insert(name.Len()+1, "x", 1); err == nil {
		t.Fatal("insert past the end should fail")
	}
	if err := name.Insert(-1, "x", 1); err == nil {
		t.Fatal("insert at a negative position should fail")
	}
	if name.String() != before {
		t.Errorf("value changed on failed insert: %q -> %q", before, name.String())
	}
}

// TestInsertCapacity tests capacity enforcement on insert
func TestInsertCapacity(t *testing.T) {
	name, err := NewFileName(strings.Repeat("a", FileNameCapacity-1))
	if err != nil {
		t.Fatal(err)
	}

	if err := name.Append("b"); err != nil {
		t.Fatalf("append up to capacity should succeed: %v", err)
	}

	before := name.String()
	err = name.Append("c")
	if err == nil {
		t.Fatal("append past capacity should fail")
	}
	requireCode(t, err, RetCExceedsMaximumLength)
	if name.String() != before {
		t.Error("value changed on failed append")
	}
}

// TestOrdering tests the byte-wise total order
func TestOrdering(t *testing.T) {
	mk := func(s string) FileName {
		name, err := NewFileName(s)
		if err != nil {
			t.Fatalf("NewFileName(%q): %v", s, err)
		}
		return name
	}

	a, ab, b := mk("a"), mk("ab"), mk("b")

	if !a.Equal(mk("a")) {
		t.Error("equal values should compare equal")
	}
	if !a.Less(ab) {
		t.Error("\"a\" should order before \"ab\" (shorter is less on prefix ties)")
	}
	if !ab.Less(b) {
		t.Error("\"ab\" should order before \"b\"")
	}
	if got := b.Compare(a); got != 1 {
		t.Errorf("Compare(\"b\", \"a\") = %d, want 1", got)
	}
}
