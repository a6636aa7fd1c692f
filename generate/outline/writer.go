// Package outline renders a solution as an indented plain-text outline of
// every project, its inputs and its outputs. It is useful for checking what a
// build file generator would see.
//
// Parameters:
//
//	indent  string used for one level of indentation (default: two spaces)
package outline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/willibrandon/slingshot/generate"
	"github.com/willibrandon/slingshot/solution"
)

// Format is the registered format name.
const Format = "outline"

func init() {
	generate.Register(Format, "Indented plain-text outline of the solution graph", func() generate.Writer { return New() })
}

// Writer prints one line per callback, indented by nesting depth.
type Writer struct {
	generate.NopWriter

	depth  int
	indent string
	err    error
}

var _ generate.Writer = (*Writer)(nil)

// New creates an outline writer.
func New() *Writer {
	return &Writer{}
}

// line writes one indented line; after the first write error every call is a no-op.
func (w *Writer) line(format string, args ...any) error {
	if w.err != nil {
		return w.err
	}
	if w.Out == nil {
		w.err = errors.New("outline: no output configured")
		return w.err
	}
	_, w.err = fmt.Fprintf(w.Out, "%s%s\n", strings.Repeat(w.indent, w.depth), fmt.Sprintf(format, args...))
	return w.err
}

func (w *Writer) open(format string, args ...any) error {
	err := w.line(format, args...)
	w.depth++
	return err
}

func (w *Writer) close() error {
	if w.depth > 0 {
		w.depth--
	}
	return w.err
}

func describe(p *solution.Project) string {
	kind := string(p.Type())
	if kind == "" {
		kind = "unknown type"
	}
	if out := p.OutputFile(); out != "" {
		return fmt.Sprintf("%s (%s) -> %s", p.Name(), kind, out)
	}
	return fmt.Sprintf("%s (%s)", p.Name(), kind)
}

func (w *Writer) StartSolution(sol *solution.Solution) error {
	w.indent = w.Params.Get("indent", "  ")
	if err := w.open("solution %s (format %s)", sol.Name(), sol.FormatVersion()); err != nil {
		return err
	}
	if configs := sol.SolutionConfigurations(); len(configs) > 0 {
		return w.line("configurations: %s", strings.Join(configs, ", "))
	}
	return nil
}

func (w *Writer) StartProjectSourceFiles(p *solution.Project) error {
	return w.open("sources of %s", p.Name())
}
func (w *Writer) ProjectSourceFile(f *solution.File) error { return w.line("%s", f.RelativePath) }
func (w *Writer) EndProjectSourceFiles() error             { return w.close() }

func (w *Writer) StartProjectResXResourceFiles(p *solution.Project) error {
	return w.open("resx resources of %s", p.Name())
}
func (w *Writer) ProjectResXResourceFile(f *solution.File) error { return w.line("%s", f.RelativePath) }
func (w *Writer) EndProjectResXResourceFiles() error             { return w.close() }

func (w *Writer) StartProjectResourceFiles(p *solution.Project) error {
	return w.open("resources of %s", p.Name())
}
func (w *Writer) ProjectResourceFile(f *solution.File) error {
	return w.line("%s as %s", f.RelativePath, f.ResourceName())
}
func (w *Writer) EndProjectResourceFiles() error { return w.close() }

func (w *Writer) StartProject(p *solution.Project) error { return w.open("project %s", describe(p)) }

func (w *Writer) StartProjectDependencies() error { return w.open("depends on") }
func (w *Writer) ProjectDependency(p *solution.Project) error {
	return w.line("project %s", p.Name())
}
func (w *Writer) FileDependency(f *solution.File) error {
	return w.line("file %s", f.RelativePathFromSolutionDirectory())
}
func (w *Writer) EndProjectDependencies() error { return w.close() }

func (w *Writer) StartResXFiles() error { return w.open("compile resx") }
func (w *Writer) ResXFile(f *solution.File) error {
	return w.line("%s", f.RelativePathFromSolutionDirectory())
}
func (w *Writer) EndResXFiles() error { return w.close() }

func (w *Writer) StartAssembly() error { return w.open("assembly") }

func (w *Writer) StartSourceFiles() error           { return w.open("sources") }
func (w *Writer) SourceFile(f *solution.File) error { return w.line("%s", f.RelativePath) }
func (w *Writer) EndSourceFiles() error             { return w.close() }

func (w *Writer) StartReferences() error { return w.open("references") }
func (w *Writer) Reference(path string, built bool) error {
	if built {
		return w.line("%s (build output)", path)
	}
	return w.line("%s", path)
}
func (w *Writer) ProjectReference(p *solution.Project) error {
	return w.line("%s (project %s)", p.OutputFile(), p.Name())
}
func (w *Writer) EndReferences() error { return w.close() }

func (w *Writer) StartResources() error { return w.open("resources") }
func (w *Writer) Resource(path, name string, resx bool) error {
	if resx {
		return w.line("%s (compiled resx)", path)
	}
	return w.line("%s as %s", path, name)
}
func (w *Writer) EndResources() error { return w.close() }

func (w *Writer) EndAssembly() error { return w.close() }

func (w *Writer) StartCopyProjectAssemblies() error { return w.open("copy") }
func (w *Writer) CopyProjectAssembly(p *solution.Project) error {
	return w.line("%s", p.OutputFile())
}
func (w *Writer) EndCopyProjectAssemblies() error { return w.close() }

func (w *Writer) EndProject() error { return w.close() }

func (w *Writer) StartCleanTargets() error { return w.open("clean") }
func (w *Writer) CleanTarget(p *solution.Project) error {
	if p.OutputFile() == "" {
		return w.line("%s", p.Name())
	}
	return w.line("%s", p.OutputFile())
}
func (w *Writer) EndCleanTargets() error { return w.close() }

func (w *Writer) EndSolution() error { return w.close() }
