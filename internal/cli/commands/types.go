package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tessera-db/tessera/internal/dialect"
)

// NewTypesCommand creates the types command
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types <dialect>",
		Short: "List a storage engine's native types",
		Long: `List the types the given storage engine persists without any
user-supplied conversion. Converters whose source or target falls outside
this set are classified from it.

Supported dialects: ` + strings.Join(dialect.Names(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dialect.ByName(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color.New(color.FgCyan, color.Bold).Fprintf(out, "Native types for %s:\n", d.Name())
			for _, t := range d.NativeTypes().List() {
				fmt.Fprintf(out, "  %s\n", t)
			}

			return nil
		},
	}
}
