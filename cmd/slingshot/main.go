// Command slingshot generates build files from Visual Studio .NET solutions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/willibrandon/slingshot/cmd/slingshot/cli"
	"github.com/willibrandon/slingshot/cmd/slingshot/commands"

	// Output formats register themselves with the generate registry
	_ "github.com/willibrandon/slingshot/generate/nant"
	_ "github.com/willibrandon/slingshot/generate/outline"
)

func main() {
	cli.SetupVersion()

	cli.AddCommand(commands.NewGenerateCommand(cli.Console))
	cli.AddCommand(commands.NewFormatsCommand(cli.Console))
	cli.AddCommand(commands.NewInspectCommand(cli.Console))
	cli.AddCommand(commands.NewVersionCommand(cli.Console))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		// SilenceErrors is set on the root command
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
