package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// OutputFlags are shared by commands that print structured output
type OutputFlags struct {
	Format string
}

// AddOutputFlags registers the standard output flags on a command
func AddOutputFlags(cmd *cobra.Command) *OutputFlags {
	flags := &OutputFlags{}
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "table", "Output format (table, json, yaml)")
	return flags
}

// validateFormat checks the format flag against the allowed set
func validateFormat(flagSet *pflag.FlagSet, allowed ...string) error {
	flag := flagSet.Lookup("format")
	if flag == nil {
		return nil
	}

	format := flag.Value.String()
	for _, candidate := range allowed {
		if format == candidate {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (expected one of: %s)", format, strings.Join(allowed, ", "))
}
