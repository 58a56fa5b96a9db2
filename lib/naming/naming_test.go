package naming

import (
	"errors"
	"strings"
	"testing"

	"github.com/ibex-ipc/ibex/lib/semantic"
)

// mustFileName validates a file name or fails the test
func mustFileName(t *testing.T, s string) semantic.FileName {
	t.Helper()
	name, err := semantic.NewFileName(s)
	if err != nil {
		t.Fatalf("invalid file name %q: %v", s, err)
	}
	return name
}

// TestResourceFileName tests prefix/suffix composition
func TestResourceFileName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Suffix = mustFileName(t, ".bb")

	name, err := cfg.ResourceFileName(mustFileName(t, "vehicle-pose"))
	if err != nil {
		t.Fatalf("ResourceFileName failed: %v", err)
	}
	if name.String() != "ibex_vehicle-pose.bb" {
		t.Errorf("expected %q, got %q", "ibex_vehicle-pose.bb", name.String())
	}
}

// TestResourceFileNameNoAffixes tests composition with zero-value affixes
func TestResourceFileNameNoAffixes(t *testing.T) {
	var cfg Config

	name, err := cfg.ResourceFileName(mustFileName(t, "service"))
	if err != nil {
		t.Fatalf("ResourceFileName failed: %v", err)
	}
	if name.String() != "service" {
		t.Errorf("expected %q, got %q", "service", name.String())
	}
}

// TestResourceFileNameCapacity tests that an overlong composition is rejected
func TestResourceFileNameCapacity(t *testing.T) {
	cfg := DefaultConfig()

	service := mustFileName(t, strings.Repeat("a", semantic.FileNameCapacity))
	_, err := cfg.ResourceFileName(service)
	if err == nil {
		t.Fatal("prefix + maximum-length service should exceed the file name capacity")
	}

	var semErr *semantic.Error
	if !errors.As(err, &semErr) || semErr.Code != semantic.RetCExceedsMaximumLength {
		t.Errorf("expected RetCExceedsMaximumLength, got %v", err)
	}
}

// TestResourcePath tests full path derivation
func TestResourcePath(t *testing.T) {
	cfg := DefaultConfig()

	path, err := cfg.ResourcePath(mustFileName(t, "vehicle-pose"))
	if err != nil {
		t.Fatalf("ResourcePath failed: %v", err)
	}
	if path.String() != "/tmp/ibex/ibex_vehicle-pose" {
		t.Errorf("expected %q, got %q", "/tmp/ibex/ibex_vehicle-pose", path.String())
	}
}

// TestResourcePathTrailingRootSeparator tests that a root directory with a
// trailing separator still derives a valid path
func TestResourcePathTrailingRootSeparator(t *testing.T) {
	root, err := semantic.NewPath("/tmp/ibex/")
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{RootDirectory: root}

	path, err := cfg.ResourcePath(mustFileName(t, "svc"))
	if err != nil {
		t.Fatalf("ResourcePath failed: %v", err)
	}
	// Consecutive separators are valid and equivalent to a single one.
	if path.String() != "/tmp/ibex//svc" {
		t.Errorf("expected %q, got %q", "/tmp/ibex//svc", path.String())
	}
}

// TestConfigString tests the formatted configuration output
func TestConfigString(t *testing.T) {
	out := DefaultConfig().String()
	for _, want := range []string{"RESOURCE NAMING", "Root Directory", "/tmp/ibex", "ibex_"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output should contain %q:\n%s", want, out)
		}
	}
}
