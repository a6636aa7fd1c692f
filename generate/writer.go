// Package generate walks a parsed solution in a fixed order and drives a
// Writer that renders the equivalent build description.
package generate

import (
	"io"

	"github.com/willibrandon/slingshot/solution"
)

// Writer renders a solution graph. The driver calls the Start/End pairs in a
// fixed, balanced order; see WriteSolution. Any error aborts the run.
type Writer interface {
	SetOutput(w io.Writer)
	SetParameters(params Parameters)

	StartSolution(sol *solution.Solution) error

	// Per-project file lists, emitted for every project before any project block
	StartProjectSourceFiles(p *solution.Project) error
	ProjectSourceFile(f *solution.File) error
	EndProjectSourceFiles() error

	StartProjectResXResourceFiles(p *solution.Project) error
	ProjectResXResourceFile(f *solution.File) error
	EndProjectResXResourceFiles() error

	StartProjectResourceFiles(p *solution.Project) error
	ProjectResourceFile(f *solution.File) error
	EndProjectResourceFiles() error

	StartProject(p *solution.Project) error

	StartProjectDependencies() error
	ProjectDependency(p *solution.Project) error
	FileDependency(f *solution.File) error
	EndProjectDependencies() error

	StartResXFiles() error
	ResXFile(f *solution.File) error
	EndResXFiles() error

	StartAssembly() error

	StartSourceFiles() error
	SourceFile(f *solution.File) error
	EndSourceFiles() error

	// Reference receives a system reference path; built reports whether the
	// assembly is expected in the build output directory.
	StartReferences() error
	Reference(path string, built bool) error
	ProjectReference(p *solution.Project) error
	EndReferences() error

	// Resource receives a compiled .resources name (resx set, name empty) or a
	// raw resource file path with its manifest resource name.
	StartResources() error
	Resource(path, name string, resx bool) error
	EndResources() error

	EndAssembly() error

	StartCopyProjectAssemblies() error
	CopyProjectAssembly(p *solution.Project) error
	EndCopyProjectAssemblies() error

	EndProject() error

	StartCleanTargets() error
	CleanTarget(p *solution.Project) error
	EndCleanTargets() error

	EndSolution() error
}

// NopWriter implements every Writer callback as a no-op and keeps the
// configured output and parameters. Writers embed it and override what they render.
type NopWriter struct {
	Out    io.Writer
	Params Parameters
}

var _ Writer = (*NopWriter)(nil)

func (w *NopWriter) SetOutput(out io.Writer)         { w.Out = out }
func (w *NopWriter) SetParameters(params Parameters) { w.Params = params }

func (w *NopWriter) StartSolution(*solution.Solution) error { return nil }

func (w *NopWriter) StartProjectSourceFiles(*solution.Project) error       { return nil }
func (w *NopWriter) ProjectSourceFile(*solution.File) error                { return nil }
func (w *NopWriter) EndProjectSourceFiles() error                          { return nil }
func (w *NopWriter) StartProjectResXResourceFiles(*solution.Project) error { return nil }
func (w *NopWriter) ProjectResXResourceFile(*solution.File) error          { return nil }
func (w *NopWriter) EndProjectResXResourceFiles() error                    { return nil }
func (w *NopWriter) StartProjectResourceFiles(*solution.Project) error     { return nil }
func (w *NopWriter) ProjectResourceFile(*solution.File) error              { return nil }
func (w *NopWriter) EndProjectResourceFiles() error                        { return nil }

func (w *NopWriter) StartProject(*solution.Project) error { return nil }

func (w *NopWriter) StartProjectDependencies() error             { return nil }
func (w *NopWriter) ProjectDependency(*solution.Project) error   { return nil }
func (w *NopWriter) FileDependency(*solution.File) error         { return nil }
func (w *NopWriter) EndProjectDependencies() error               { return nil }
func (w *NopWriter) StartResXFiles() error                       { return nil }
func (w *NopWriter) ResXFile(*solution.File) error               { return nil }
func (w *NopWriter) EndResXFiles() error                         { return nil }
func (w *NopWriter) StartAssembly() error                        { return nil }
func (w *NopWriter) StartSourceFiles() error                     { return nil }
func (w *NopWriter) SourceFile(*solution.File) error             { return nil }
func (w *NopWriter) EndSourceFiles() error                       { return nil }
func (w *NopWriter) StartReferences() error                      { return nil }
func (w *NopWriter) Reference(string, bool) error                { return nil }
func (w *NopWriter) ProjectReference(*solution.Project) error    { return nil }
func (w *NopWriter) EndReferences() error                        { return nil }
func (w *NopWriter) StartResources() error                       { return nil }
func (w *NopWriter) Resource(string, string, bool) error         { return nil }
func (w *NopWriter) EndResources() error                         { return nil }
func (w *NopWriter) EndAssembly() error                          { return nil }
func (w *NopWriter) StartCopyProjectAssemblies() error           { return nil }
func (w *NopWriter) CopyProjectAssembly(*solution.Project) error { return nil }
func (w *NopWriter) EndCopyProjectAssemblies() error             { return nil }
func (w *NopWriter) EndProject() error                           { return nil }

func (w *NopWriter) StartCleanTargets() error            { return nil }
func (w *NopWriter) CleanTarget(*solution.Project) error { return nil }
func (w *NopWriter) EndCleanTargets() error              { return nil }
func (w *NopWriter) EndSolution() error                  { return nil }
