package generate

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/willibrandon/slingshot/observability"
	"github.com/willibrandon/slingshot/sink"
	"github.com/willibrandon/slingshot/solution"
)

// WriteSolution parses the solution at solutionPath and drives w over it:
//
//  1. SetOutput, SetParameters
//  2. StartSolution
//  3. per project: source, ResX and other resource file lists (each only when non-empty)
//  4. per project with compiled files: the full project block
//  5. clean targets for every project
//  6. EndSolution
//
// Projects are visited in declaration order. The first error aborts the walk.
func WriteSolution(ctx context.Context, w Writer, out io.Writer, solutionPath string, params Parameters, uriMap solution.URIMap, opts ...solution.Option) error {
	w.SetOutput(out)
	w.SetParameters(params)

	sol, err := solution.Load(ctx, solutionPath, uriMap, opts...)
	if err != nil {
		return err
	}
	return Walk(ctx, w, sol)
}

// Walk drives w over an already parsed solution. SetOutput and SetParameters
// must have been called.
func Walk(ctx context.Context, w Writer, sol *solution.Solution) error {
	projects := sol.Projects()
	observability.RecordProjectCount(ctx, len(projects))

	if err := w.StartSolution(sol); err != nil {
		return err
	}

	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeProjectFileLists(w, p); err != nil {
			return fmt.Errorf("project %s: %w", p.Name(), err)
		}
	}

	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.CountFiles(solution.BuildActionCompile) == 0 {
			continue
		}
		if err := writeProject(w, sol, p); err != nil {
			return fmt.Errorf("project %s: %w", p.Name(), err)
		}
	}

	if err := w.StartCleanTargets(); err != nil {
		return err
	}
	for _, p := range projects {
		if err := w.CleanTarget(p); err != nil {
			return err
		}
	}
	if err := w.EndCleanTargets(); err != nil {
		return err
	}

	return w.EndSolution()
}

// fileList emits start, one callback per file, then end; nothing when files is empty.
func fileList(files []*solution.File, start func() error, each func(*solution.File) error, end func() error) error {
	if len(files) == 0 {
		return nil
	}
	if err := start(); err != nil {
		return err
	}
	for _, f := range files {
		if err := each(f); err != nil {
			return err
		}
	}
	return end()
}

func writeProjectFileLists(w Writer, p *solution.Project) error {
	if err := fileList(p.SourceFiles(),
		func() error { return w.StartProjectSourceFiles(p) },
		w.ProjectSourceFile,
		w.EndProjectSourceFiles); err != nil {
		return err
	}
	if err := fileList(p.ResXResourceFiles(),
		func() error { return w.StartProjectResXResourceFiles(p) },
		w.ProjectResXResourceFile,
		w.EndProjectResXResourceFiles); err != nil {
		return err
	}
	return fileList(p.NonResXResourceFiles(),
		func() error { return w.StartProjectResourceFiles(p) },
		w.ProjectResourceFile,
		w.EndProjectResourceFiles)
}

func writeProject(w Writer, sol *solution.Solution, p *solution.Project) error {
	referenced, err := p.ReferencedProjects()
	if err != nil {
		return err
	}

	if err := w.StartProject(p); err != nil {
		return err
	}

	if err := writeDependencies(w, sol, p, referenced); err != nil {
		return err
	}

	if err := fileList(p.ResXResourceFiles(), w.StartResXFiles, w.ResXFile, w.EndResXFiles); err != nil {
		return err
	}

	if err := writeAssembly(w, sol, p, referenced); err != nil {
		return err
	}

	if err := w.StartCopyProjectAssemblies(); err != nil {
		return err
	}
	for _, r := range referenced {
		if err := w.CopyProjectAssembly(r); err != nil {
			return err
		}
	}
	if err := w.EndCopyProjectAssemblies(); err != nil {
		return err
	}

	return w.EndProject()
}

func writeDependencies(w Writer, sol *solution.Solution, p *solution.Project, referenced []*solution.Project) error {
	if err := w.StartProjectDependencies(); err != nil {
		return err
	}
	for _, dep := range sol.Dependencies(p) {
		if err := w.ProjectDependency(dep); err != nil {
			return err
		}
	}
	for _, dep := range referenced {
		if err := w.ProjectDependency(dep); err != nil {
			return err
		}
	}
	for _, f := range p.Files() {
		// .licx files are not build inputs
		if strings.HasSuffix(strings.ToLower(f.RelativePath), ".licx") {
			continue
		}
		if err := w.FileDependency(f); err != nil {
			return err
		}
	}
	return w.EndProjectDependencies()
}

func writeAssembly(w Writer, sol *solution.Solution, p *solution.Project, referenced []*solution.Project) error {
	if err := w.StartAssembly(); err != nil {
		return err
	}

	if err := w.StartSourceFiles(); err != nil {
		return err
	}
	for _, f := range p.SourceFiles() {
		if err := w.SourceFile(f); err != nil {
			return err
		}
	}
	if err := w.EndSourceFiles(); err != nil {
		return err
	}

	if err := w.StartReferences(); err != nil {
		return err
	}
	for _, r := range p.SystemReferences() {
		path, built := ReferencePath(sol, p, r)
		if err := w.Reference(path, built); err != nil {
			return err
		}
	}
	for _, r := range referenced {
		if err := w.ProjectReference(r); err != nil {
			return err
		}
	}
	if err := w.EndReferences(); err != nil {
		return err
	}

	if err := w.StartResources(); err != nil {
		return err
	}
	for _, f := range p.ResXResourceFiles() {
		if err := w.Resource(ResXResourceName(p, f), "", true); err != nil {
			return err
		}
	}
	for _, f := range p.NonResXResourceFiles() {
		if err := w.Resource(f.RelativePathFromSolutionDirectory(), f.ResourceName(), false); err != nil {
			return err
		}
	}
	if err := w.EndResources(); err != nil {
		return err
	}

	return w.EndAssembly()
}

// ReferencePath resolves where a system reference is compiled against. By default
// it is the reference value plus ".dll", expected in the build output. An assembly
// reference that is not copied locally is outside the build output: its hint path
// is used when present, resolved against the project directory when relative.
func ReferencePath(sol *solution.Solution, p *solution.Project, r *solution.Reference) (path string, built bool) {
	path = r.Value() + ".dll"
	if r.CopyLocal || r.Kind != solution.ReferenceAssemblyName {
		return path, true
	}
	if r.HintPath == "" {
		return path, false
	}
	base := sol.Dir()
	if dir := p.RelativeDir(); dir != "" {
		base = solution.ResolvePath(sol.Dir(), dir)
	}
	return solution.ResolvePath(base, r.HintPath), false
}

// ResXResourceName is the compiled resource name of a .resx file:
// root namespace, base name without extension, ".resources".
func ResXResourceName(p *solution.Project, f *solution.File) string {
	base := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
	if p.RootNamespace() == "" {
		return base + ".resources"
	}
	return p.RootNamespace() + "." + base + ".resources"
}

// Options configures Run.
type Options struct {
	// Format names a registered writer
	Format string

	SolutionPath string

	// Output is "-" for stdout, a file path, or s3://bucket/key
	Output string

	Parameters Parameters
	URIMap     solution.URIMap

	// Sink configures stdout and S3 destinations
	Sink sink.Options

	Logger observability.Logger
	Cache  *solution.Cache
}

// Run generates one build description end to end: it creates the writer,
// opens the sink, drives WriteSolution and commits the output only on success.
func Run(ctx context.Context, opts Options) (err error) {
	log := opts.Logger
	if log == nil {
		log = observability.NewNullLogger()
	}
	format := strings.ToLower(opts.Format)
	log = log.ForContext("Format", format)

	start := time.Now()
	ctx, span := observability.StartGenerateSpan(ctx, format, opts.SolutionPath, opts.Output)
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		observability.GenerationsTotal.WithLabelValues(format, status).Inc()
		observability.GenerationDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
		observability.EndSpanWithError(span, err)
	}()

	w, err := New(format)
	if err != nil {
		return err
	}

	out, err := sink.Open(ctx, opts.Output, opts.Sink)
	if err != nil {
		return err
	}

	solOpts := []solution.Option{solution.WithLogger(log)}
	if opts.Cache != nil {
		solOpts = append(solOpts, solution.WithCache(opts.Cache))
	}

	if err := WriteSolution(ctx, w, out, opts.SolutionPath, opts.Parameters, opts.URIMap, solOpts...); err != nil {
		if abortErr := out.Abort(); abortErr != nil {
			log.Warn("Failed to discard output {Location}: {Error}", out.Location(), abortErr)
		}
		return err
	}

	if err := out.Commit(ctx); err != nil {
		_ = out.Abort()
		return err
	}

	log.Info("Wrote {Location} in {Elapsed}", out.Location(), time.Since(start))
	return nil
}
