package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/willibrandon/slingshot/cmd/slingshot/output"
	"github.com/willibrandon/slingshot/solution"
)

type inspectOptions struct {
	solution  string
	mappings  []string
	recursive bool
	asJSON    bool
}

// NewInspectCommand creates the inspect command
func NewInspectCommand(console *output.Console) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the projects and dependencies of a solution",
		Long: `Read a solution and print every registered project with its type,
output, dependencies and references, in declaration order.

Examples:
  slingshot inspect --sln Acme.sln
  slingshot inspect --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, console, opts)
		},
	}

	cmd.Flags().StringVar(&opts.solution, "sln", "", "Solution file to read (default: the only .sln in the working directory)")
	cmd.Flags().StringArrayVar(&opts.mappings, "map", nil, "Map a web project URI prefix to a local directory (uri=directory, repeatable)")
	cmd.Flags().BoolVar(&opts.recursive, "recursive", false, "Search subdirectories when looking for the solution file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Write the result as JSON")

	return cmd
}

func names(projects []*solution.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Name())
	}
	return out
}

func describeProject(sol *solution.Solution, p *solution.Project) (output.ProjectInfo, error) {
	deps, err := sol.AllDependencies(p)
	if err != nil {
		return output.ProjectInfo{}, err
	}
	referenced, err := p.ReferencedProjects()
	if err != nil {
		return output.ProjectInfo{}, err
	}

	info := output.ProjectInfo{
		Name:           p.Name(),
		GUID:           p.GUID(),
		Type:           string(p.Type()),
		Path:           p.RelativePath(),
		AssemblyName:   p.AssemblyName(),
		OutputFile:     p.OutputFile(),
		SourceFiles:    p.CountFiles(solution.BuildActionCompile),
		Dependencies:   names(deps),
		ProjectRefs:    names(referenced),
		References:     []string{},
		Configurations: []string{},
	}
	for _, r := range p.SystemReferences() {
		info.References = append(info.References, r.Value())
	}
	for _, c := range p.Configurations() {
		info.Configurations = append(info.Configurations, c.Name)
	}
	return info, nil
}

func runInspect(cmd *cobra.Command, console *output.Console, opts *inspectOptions) error {
	ctx := cmd.Context()
	start := time.Now()

	s, err := startSession(cmd, console)
	if err != nil {
		return err
	}
	defer closeSession(ctx, s)

	slnPath, err := resolveSolution(opts.solution, opts.recursive)
	if err != nil {
		return err
	}
	uriMap := parseMappings(console, append(append([]string{}, s.cfg.URIMap...), opts.mappings...))

	sol, err := solution.Load(ctx, slnPath, uriMap, solution.WithLogger(s.logger), solution.WithCache(s.cache))
	if err != nil {
		return err
	}

	result := output.InspectOutput{
		SchemaVersion:  output.CurrentSchemaVersion,
		Solution:       sol.Name(),
		FormatVersion:  sol.FormatVersion(),
		Configurations: sol.SolutionConfigurations(),
		Projects:       []output.ProjectInfo{},
	}
	if result.Configurations == nil {
		result.Configurations = []string{}
	}
	for _, p := range sol.Projects() {
		info, err := describeProject(sol, p)
		if err != nil {
			return err
		}
		result.Projects = append(result.Projects, info)
	}
	result.ElapsedMs = output.MeasureElapsed(start)

	if opts.asJSON {
		return output.WriteJSON(console.Out(), result)
	}

	console.Printf("Solution %s (format %s)\n", result.Solution, result.FormatVersion)
	if len(result.Configurations) > 0 {
		console.Printf("Configurations: %s\n", strings.Join(result.Configurations, ", "))
	}
	for _, p := range result.Projects {
		console.Printf("\n%s %s (%s)\n", p.Name, p.GUID, p.Type)
		console.Printf("  path:        %s\n", p.Path)
		if p.OutputFile != "" {
			console.Printf("  output:      %s\n", p.OutputFile)
		}
		console.Printf("  sources:     %d\n", p.SourceFiles)
		console.Printf("  depends on:  %s\n", listOrNone(p.Dependencies))
		console.Printf("  references:  %s\n", listOrNone(p.References))
	}
	return nil
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
