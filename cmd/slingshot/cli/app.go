package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/willibrandon/slingshot/cmd/slingshot/output"
)

var rootCmd = &cobra.Command{
	Use:   "slingshot",
	Short: "Build file generator for Visual Studio .NET solutions",
	Long: `slingshot reads a Visual Studio .NET solution, its C#, VB.NET and
Visual C++ projects and enterprise templates, resolves the dependencies
between projects, and writes an equivalent build description.

Complete documentation is available at https://github.com/willibrandon/slingshot`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// Show help when no command is provided
		_ = cmd.Help()
	},
}

// Console is the global console for CLI commands
var Console *output.Console

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	Console = output.DefaultConsole()

	rootCmd.PersistentFlags().String("verbosity", "normal", "Display verbosity (quiet, normal, detailed, diagnostic)")
	rootCmd.PersistentFlags().String("env-file", "", "Environment file to load settings from (default: ./.env when present)")
	rootCmd.PersistentFlags().String("trace-exporter", "", "OpenTelemetry span exporter (none, stdout, otlp)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file on exit")
}

// SetupVersion configures version information after variables are set
func SetupVersion() {
	rootCmd.SetVersionTemplate(GetFullVersion() + "\n")
	rootCmd.Version = GetVersion()
}

// AddCommand adds a command to the root command
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Root returns the root command
func Root() *cobra.Command {
	return rootCmd
}
