// Package commands implements the tessera CLI.
package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tessera",
		Short: "Tessera mapping-layer converter tooling",
		Long: color.CyanString(`Tessera - custom converters for persistence mapping

Tessera lets applications register bidirectional type converters that
override the default mapping between domain values and storage-native
values. This CLI validates converter declarations before startup and
inspects the type systems of the supported storage engines.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewTypesCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Fprint(cmd.OutOrStdout(), "Tessera version: ")
			valueColor.Fprintln(cmd.OutOrStdout(), Version)
			titleColor.Fprint(cmd.OutOrStdout(), "Git commit:      ")
			valueColor.Fprintln(cmd.OutOrStdout(), GitCommit)
			titleColor.Fprint(cmd.OutOrStdout(), "Build date:      ")
			valueColor.Fprintln(cmd.OutOrStdout(), BuildDate)
			titleColor.Fprint(cmd.OutOrStdout(), "Go version:      ")
			valueColor.Fprintln(cmd.OutOrStdout(), goVer)
		},
	}
}
