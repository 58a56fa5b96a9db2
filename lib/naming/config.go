package naming

import (
	"fmt"
	"strings"

	"github.com/ibex-ipc/ibex/lib/semantic"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("naming")

// --------------------------------------------------------------------------
// Resource naming configuration struct
// --------------------------------------------------------------------------

// Config holds the naming parameters under which all shared resources of a
// deployment are created. The zero values of Prefix and Suffix mean "no
// prefix" and "no suffix"; RootDirectory should always be set (see
// DefaultConfig).
type Config struct {
	// RootDirectory is the directory all resource paths are derived under.
	RootDirectory semantic.Path
	// Prefix is prepended to every resource file name.
	Prefix semantic.FileName
	// Suffix is appended to every resource file name.
	Suffix semantic.FileName
}

// DefaultConfig returns the default naming configuration.
func DefaultConfig() Config {
	// The literals are known-valid, the errors are structurally impossible.
	root, _ := semantic.NewPath("/tmp/ibex")
	prefix, _ := semantic.NewFileName("ibex_")
	return Config{
		RootDirectory: root,
		Prefix:        prefix,
	}
}

// String returns a formatted string representation of the configuration
func (c Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Resource Naming")
	addField("Root Directory", c.RootDirectory.String())
	addField("Prefix", c.Prefix.String())
	addField("Suffix", c.Suffix.String())

	return sb.String()
}

// --------------------------------------------------------------------------
// Path Derivation
// --------------------------------------------------------------------------

// ResourceFileName composes the file name for a service's shared resource:
// prefix + service + suffix. Every composition step re-validates the
// candidate, so an overlong or grammar-violating combination is rejected
// with the prior parts untouched.
func (c Config) ResourceFileName(service semantic.FileName) (semantic.FileName, error) {
	name := c.Prefix
	if err := name.Append(service.String()); err != nil {
		return semantic.FileName{}, err
	}
	if !c.Suffix.IsEmpty() {
		if err := name.Append(c.Suffix.String()); err != nil {
			return semantic.FileName{}, err
		}
	}
	return name, nil
}

// ResourcePath derives the full filesystem path of a service's shared
// resource under the configured root directory.
func (c Config) ResourcePath(service semantic.FileName) (semantic.FilePath, error) {
	fileName, err := c.ResourceFileName(service)
	if err != nil {
		return semantic.FilePath{}, err
	}

	path, err := semantic.NewFilePath(c.RootDirectory.String() + "/" + fileName.String())
	if err != nil {
		return semantic.FilePath{}, err
	}

	Logger.Debugf("derived resource path %q for service %q", path.String(), service.String())
	return path, nil
}
