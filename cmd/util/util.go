package util

import (
	"fmt"
	"strings"

	"github.com/ibex-ipc/ibex/lib/blackboard/codec"
	"github.com/ibex-ipc/ibex/lib/naming"
	"github.com/ibex-ipc/ibex/lib/semantic"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineWidth := 0

	for i, word := range words {
		if lineWidth > 0 && lineWidth+1+len(word) > Wrap {
			sb.WriteString("\n")
			lineWidth = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineWidth++
		}
		sb.WriteString(word)
		lineWidth += len(word)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// Configuration initialization
// --------------------------------------------------------------------------

// InitEnvConfig loads .env files and configures viper's environment
// binding. Intended for use with cobra.OnInitialize.
func InitEnvConfig() {
	// load .env files (ignore if not found)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("ibex")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// --------------------------------------------------------------------------
// Naming configuration
// --------------------------------------------------------------------------

// SetupNamingFlags adds the resource naming flags to a command
func SetupNamingFlags(cmd *cobra.Command) {
	key := "root-dir"
	cmd.PersistentFlags().String(key, "/tmp/ibex", WrapString("Directory under which shared resource paths are derived"))

	key = "prefix"
	cmd.PersistentFlags().String(key, "ibex_", WrapString("Prefix prepended to every resource file name"))

	key = "suffix"
	cmd.PersistentFlags().String(key, "", WrapString("Suffix appended to every resource file name"))
}

// GetNamingConfig builds a naming.Config from the bound flags. Every part
// is validated through the semantic string constructors.
func GetNamingConfig() (naming.Config, error) {
	cfg := naming.Config{}

	root, err := semantic.NewPath(viper.GetString("root-dir"))
	if err != nil {
		return cfg, fmt.Errorf("invalid root-dir: %w", err)
	}
	cfg.RootDirectory = root

	if prefix := viper.GetString("prefix"); prefix != "" {
		name, err := semantic.NewFileName(prefix)
		if err != nil {
			return cfg, fmt.Errorf("invalid prefix: %w", err)
		}
		cfg.Prefix = name
	}

	if suffix := viper.GetString("suffix"); suffix != "" {
		name, err := semantic.NewFileName(suffix)
		if err != nil {
			return cfg, fmt.Errorf("invalid suffix: %w", err)
		}
		cfg.Suffix = name
	}

	return cfg, nil
}

// --------------------------------------------------------------------------
// Codec selection
// --------------------------------------------------------------------------

// GetCodec returns the snapshot codec selected via the codec flag
func GetCodec() (codec.Codec, error) {
	return CodecByName(viper.GetString("codec"))
}

// CodecByName returns the snapshot codec with the given name
func CodecByName(name string) (codec.Codec, error) {
	switch name {
	case "json":
		return codec.NewJSONCodec(), nil
	case "gob":
		return codec.NewGOBCodec(), nil
	case "binary":
		return codec.NewBinaryCodec(), nil
	default:
		return nil, fmt.Errorf("invalid codec %s", name)
	}
}
