package commands

import (
	"github.com/spf13/cobra"

	"github.com/willibrandon/slingshot/cmd/slingshot/output"
	"github.com/willibrandon/slingshot/generate"
	"github.com/willibrandon/slingshot/sink"
)

type generateOptions struct {
	solution  string
	format    string
	output    string
	mappings  []string
	recursive bool
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand(console *output.Console) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [name=value ...]",
		Short: "Generate a build file from a solution",
		Long: `Read a solution and every project it declares, then write the build
description produced by the selected format.

Arguments of the form name=value are passed to the writer as parameters;
see "slingshot formats" for the parameters each format understands.

Examples:
  slingshot generate --sln Acme.sln --output Acme.build
  slingshot generate --format outline
  slingshot generate config=Release build.dir=out --map http://localhost/=C:/Inetpub/wwwroot/
  slingshot generate --output s3://builds/acme/Acme.build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, console, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.solution, "sln", "", "Solution file to read (default: the only .sln in the working directory)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format (default: nant, or SLINGSHOT_FORMAT)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output destination: -, a file path, or s3://bucket/key (default: -)")
	cmd.Flags().StringArrayVar(&opts.mappings, "map", nil, "Map a web project URI prefix to a local directory (uri=directory, repeatable)")
	cmd.Flags().BoolVar(&opts.recursive, "recursive", false, "Search subdirectories when looking for the solution file")

	return cmd
}

func runGenerate(cmd *cobra.Command, console *output.Console, opts *generateOptions, args []string) error {
	ctx := cmd.Context()

	s, err := startSession(cmd, console)
	if err != nil {
		return err
	}
	defer closeSession(ctx, s)

	params := generate.Parameters{}
	for _, arg := range args {
		name, value, ok := generate.ParseParameter(arg)
		if !ok {
			console.Warning("ignoring argument %q, expected name=value", arg)
			continue
		}
		params.Set(name, value)
	}

	slnPath, err := resolveSolution(opts.solution, opts.recursive)
	if err != nil {
		return err
	}

	format := firstNonEmpty(opts.format, s.cfg.Format)
	dest := firstNonEmpty(opts.output, s.cfg.Output)
	uriMap := parseMappings(console, append(append([]string{}, s.cfg.URIMap...), opts.mappings...))

	console.Detail("Generating %s from %s", format, slnPath)
	for _, name := range params.Names() {
		console.Debug("parameter %s=%s", name, params[name])
	}

	err = generate.Run(ctx, generate.Options{
		Format:       format,
		SolutionPath: slnPath,
		Output:       dest,
		Parameters:   params,
		URIMap:       uriMap,
		Sink: sink.Options{
			Stdout: console.Out(),
			S3:     s.cfg.S3,
		},
		Logger: s.logger,
		Cache:  s.cache,
	})
	if err != nil {
		return err
	}

	if dest != "-" {
		console.Success("Wrote %s", dest)
	}
	return nil
}
