package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tessera-db/tessera/internal/cli/config"
	"github.com/tessera-db/tessera/internal/convert"
	"github.com/tessera-db/tessera/internal/dialect"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate declared converters against the configured dialect",
		Long: `Classify every converter declared in tessera.yml against the native
type set of the configured dialect.

A converter whose direction cannot be inferred from its types needs an
explicit direction; without one the declaration is invalid and the
application must not start with it.`,
		Example: `  # Validate converters in the current directory
  tessera check

  # Validate a specific project
  tessera check --dir ./examples/blog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, dirFlag)
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", ".", "Directory containing tessera.yml")

	return cmd
}

func runCheck(cmd *cobra.Command, dir string) error {
	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return err
	}

	d, err := dialect.ByName(cfg.Dialect)
	if err != nil {
		return err
	}
	native := d.NativeTypes()

	out := cmd.OutOrStdout()
	invalid := 0

	for _, c := range cfg.Converters {
		hint, err := c.Hint()
		if err != nil {
			invalid++
			fmt.Fprintf(out, "%s %v\n", color.RedString("✗"), err)
			continue
		}

		role, err := convert.Classify(
			convert.TypeDescriptor(c.Source),
			convert.TypeDescriptor(c.Target),
			hint,
			native,
		)
		if err != nil {
			invalid++
			fmt.Fprintf(out, "%s %v\n", color.RedString("✗"), err)
			continue
		}

		fmt.Fprintf(out, "%s %s -> %s [%s]\n", color.GreenString("✓"), c.Source, c.Target, role)
	}

	if invalid > 0 {
		return fmt.Errorf("%d invalid converter declaration(s) for dialect %s", invalid, cfg.Dialect)
	}

	fmt.Fprintf(out, "%d converter(s) valid for dialect %s\n", len(cfg.Converters), cfg.Dialect)
	return nil
}
