// Package nant renders a solution as a NAnt build file: one target per
// compiled project in declaration order, plus init, build and clean targets.
// Build order comes from each target's depends list.
//
// Parameters:
//
//	config     configuration whose compiler settings are used (default: first in the solution, else Debug)
//	build.dir  directory receiving every assembly (default: build)
//	default    default target (default: build)
package nant

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/willibrandon/slingshot/generate"
	"github.com/willibrandon/slingshot/solution"
)

// Format is the registered format name.
const Format = "nant"

const buildDir = "${build.dir}"

func init() {
	generate.Register(Format, "NAnt build file", func() generate.Writer { return New() })
}

var errNoProject = errors.New("nant: callback outside a project block")

// Writer builds the NAnt document in memory and encodes it at EndSolution.
type Writer struct {
	generate.NopWriter

	doc    *buildFile
	config string

	project  *solution.Project
	target   *target
	upToDate *upToDateTask
	depends  []string

	compile *compileTask
	copy    *copyTask

	fileSet *fileSet
}

var _ generate.Writer = (*Writer)(nil)

// New creates a NAnt writer.
func New() *Writer {
	return &Writer{}
}

func (w *Writer) StartSolution(sol *solution.Solution) error {
	w.config = "Debug"
	if names := sol.ConfigurationNames(); len(names) > 0 {
		w.config = names[0]
	}
	w.config = w.Params.Get("config", w.config)

	w.doc = &buildFile{
		Name:    sol.Name(),
		Default: w.Params.Get("default", "build"),
		BaseDir: ".",
		Comment: fmt.Sprintf(" Generated by slingshot from %s ", path.Base(solution.NormalizePath(sol.Path()))),
		Properties: []property{
			{Name: "config", Value: w.config, Overwrite: "false"},
			{Name: "build.dir", Value: w.Params.Get("build.dir", "build"), Overwrite: "false"},
		},
	}

	var compiled []string
	for _, p := range sol.Projects() {
		if p.CountFiles(solution.BuildActionCompile) > 0 {
			compiled = append(compiled, p.Name())
		}
	}
	w.doc.Targets = append(w.doc.Targets,
		&target{
			Name:        "init",
			Description: "Create the build directory",
			Tasks:       []any{&mkdirTask{Dir: buildDir}},
		},
		&target{
			Name:        "build",
			Depends:     strings.Join(compiled, ","),
			Description: "Build every project",
		},
	)
	return nil
}

func projectBaseDir(p *solution.Project) string {
	if dir := p.RelativeDir(); dir != "" {
		return dir
	}
	return "."
}

func (w *Writer) startFileSet(p *solution.Project, kind string) error {
	w.doc.FileSets = append(w.doc.FileSets, fileSet{ID: p.Name() + "." + kind, BaseDir: projectBaseDir(p)})
	w.fileSet = &w.doc.FileSets[len(w.doc.FileSets)-1]
	return nil
}

func (w *Writer) addToFileSet(f *solution.File) error {
	if w.fileSet == nil {
		return errors.New("nant: file outside a file list")
	}
	w.fileSet.add(f.RelativePath)
	return nil
}

func (w *Writer) endFileSet() error {
	w.fileSet = nil
	return nil
}

func (w *Writer) StartProjectSourceFiles(p *solution.Project) error { return w.startFileSet(p, "sources") }
func (w *Writer) ProjectSourceFile(f *solution.File) error          { return w.addToFileSet(f) }
func (w *Writer) EndProjectSourceFiles() error                      { return w.endFileSet() }

func (w *Writer) StartProjectResXResourceFiles(p *solution.Project) error {
	return w.startFileSet(p, "resx")
}
func (w *Writer) ProjectResXResourceFile(f *solution.File) error { return w.addToFileSet(f) }
func (w *Writer) EndProjectResXResourceFiles() error             { return w.endFileSet() }

func (w *Writer) StartProjectResourceFiles(p *solution.Project) error {
	return w.startFileSet(p, "resources")
}
func (w *Writer) ProjectResourceFile(f *solution.File) error { return w.addToFileSet(f) }
func (w *Writer) EndProjectResourceFiles() error             { return w.endFileSet() }

func outputPath(p *solution.Project) string {
	if p.OutputFile() != "" {
		return buildDir + "/" + p.OutputFile()
	}
	return buildDir + "/" + p.Name()
}

func upToDateProperty(p *solution.Project) string {
	return p.Name() + ".uptodate"
}

func (w *Writer) configuration(p *solution.Project) *solution.Configuration {
	if c, ok := p.Configuration(w.config); ok {
		return c
	}
	if cs := p.Configurations(); len(cs) > 0 {
		return cs[0]
	}
	return &solution.Configuration{Name: w.config}
}

func (w *Writer) StartProject(p *solution.Project) error {
	w.project = p
	w.depends = []string{"init"}
	w.upToDate = &upToDateTask{
		Property:    upToDateProperty(p),
		TargetFiles: fileSet{Includes: []include{{Name: outputPath(p)}}},
	}
	w.target = &target{
		Name:        p.Name(),
		Description: "Build " + p.Name(),
		Tasks:       []any{w.upToDate},
	}
	w.doc.Targets = append(w.doc.Targets, w.target)
	return nil
}

func (w *Writer) StartProjectDependencies() error {
	if w.target == nil {
		return errNoProject
	}
	return nil
}

func (w *Writer) ProjectDependency(p *solution.Project) error {
	if w.target == nil {
		return errNoProject
	}
	for _, d := range w.depends {
		if d == p.Name() {
			return nil
		}
	}
	w.depends = append(w.depends, p.Name())
	w.upToDate.SourceFiles.add(outputPath(p))
	return nil
}

func (w *Writer) FileDependency(f *solution.File) error {
	if w.target == nil {
		return errNoProject
	}
	w.upToDate.SourceFiles.add(f.RelativePathFromSolutionDirectory())
	return nil
}

func (w *Writer) EndProjectDependencies() error {
	if w.target == nil {
		return errNoProject
	}
	w.target.Depends = strings.Join(w.depends, ",")
	return nil
}

func (w *Writer) ResXFile(f *solution.File) error {
	if w.target == nil {
		return errNoProject
	}
	w.target.Tasks = append(w.target.Tasks, &resGenTask{
		Input:  f.RelativePathFromSolutionDirectory(),
		Output: buildDir + "/" + generate.ResXResourceName(w.project, f),
		Unless: "${" + upToDateProperty(w.project) + "}",
	})
	return nil
}

func compilerTarget(outputType string) string {
	switch strings.ToLower(outputType) {
	case "exe":
		return "exe"
	case "winexe":
		return "winexe"
	case "library":
		return "library"
	default:
		return "module"
	}
}

func (w *Writer) StartAssembly() error {
	p := w.project
	if p == nil {
		return errNoProject
	}
	unless := "${" + upToDateProperty(p) + "}"
	c := w.configuration(p)

	task := &compileTask{
		Target:  compilerTarget(p.OutputType()),
		Output:  outputPath(p),
		Debug:   strconv.FormatBool(c.DebugSymbols),
		Unless:  unless,
		Sources: fileSet{BaseDir: projectBaseDir(p)},
	}
	if c.Optimize {
		task.Optimize = "true"
	}
	if c.WarningLevel > 0 {
		task.WarnLevel = strconv.Itoa(c.WarningLevel)
	}
	if c.DocumentationFile != "" {
		task.Doc = buildDir + "/" + path.Base(c.DocumentationFile)
	}

	if p.IsVB() {
		task.XMLName = xml.Name{Local: "vbc"}
		task.Define = c.DefineConstants
		task.RootNamespace = p.RootNamespace()
		if !c.CheckForOverflowUnderflow {
			task.RemoveIntChecks = "true"
		}
	} else {
		task.XMLName = xml.Name{Local: "csc"}
		task.Define = strings.Join(c.Defines(), ";")
		if c.AllowUnsafeBlocks {
			task.Unsafe = "true"
		}
		if c.CheckForOverflowUnderflow {
			task.Checked = "true"
		}
	}

	w.compile = task
	w.target.Tasks = append(w.target.Tasks, task)
	return nil
}

func (w *Writer) sources() (*fileSet, error) {
	if w.compile == nil {
		return nil, errors.New("nant: source file outside an assembly block")
	}
	return &w.compile.Sources, nil
}

func (w *Writer) SourceFile(f *solution.File) error {
	fs, err := w.sources()
	if err != nil {
		return err
	}
	fs.add(f.RelativePath)
	return nil
}

func (w *Writer) Reference(file string, built bool) error {
	if w.compile == nil {
		return nil
	}
	if w.compile.References == nil {
		w.compile.References = &fileSet{}
	}
	if built {
		file = buildDir + "/" + file
	}
	w.compile.References.add(file)
	return nil
}

func (w *Writer) ProjectReference(p *solution.Project) error {
	if w.compile == nil {
		return nil
	}
	if w.compile.References == nil {
		w.compile.References = &fileSet{}
	}
	w.compile.References.add(outputPath(p))
	return nil
}

func (w *Writer) Resource(file, name string, resx bool) error {
	if w.compile == nil {
		return nil
	}
	if resx {
		if w.compile.Resources == nil {
			w.compile.Resources = &fileSet{}
		}
		w.compile.Resources.add(buildDir + "/" + file)
		return nil
	}
	w.compile.Args = append(w.compile.Args, arg{Value: "/resource:" + file + "," + name})
	return nil
}

func (w *Writer) EndAssembly() error {
	w.compile = nil
	return nil
}

func (w *Writer) StartCopyProjectAssemblies() error {
	if w.target == nil {
		return errNoProject
	}
	toDir := buildDir
	if out := w.configuration(w.project).OutputPath; out != "" {
		toDir = solution.JoinRelative(w.project.RelativeDir(), strings.TrimSuffix(out, "/"))
	}
	w.copy = &copyTask{ToDir: toDir, Flatten: "true", FileSet: fileSet{BaseDir: buildDir}}
	return nil
}

func (w *Writer) CopyProjectAssembly(p *solution.Project) error {
	if w.copy == nil {
		return errNoProject
	}
	w.copy.FileSet.add(path.Base(outputPath(p)))
	return nil
}

func (w *Writer) EndCopyProjectAssemblies() error {
	if w.copy != nil && len(w.copy.FileSet.Includes) > 0 {
		w.target.Tasks = append(w.target.Tasks, w.copy)
	}
	w.copy = nil
	return nil
}

func (w *Writer) EndProject() error {
	w.project = nil
	w.target = nil
	w.upToDate = nil
	w.depends = nil
	return nil
}

func (w *Writer) StartCleanTargets() error {
	w.target = &target{Name: "clean", Description: "Delete build outputs"}
	w.doc.Targets = append(w.doc.Targets, w.target)
	return nil
}

func (w *Writer) CleanTarget(p *solution.Project) error {
	if w.target == nil {
		return errNoProject
	}
	if p.OutputFile() == "" {
		return nil
	}
	w.target.Tasks = append(w.target.Tasks, &deleteTask{File: outputPath(p), FailOnError: "false"})
	for _, f := range p.ResXResourceFiles() {
		w.target.Tasks = append(w.target.Tasks, &deleteTask{
			File:        buildDir + "/" + generate.ResXResourceName(p, f),
			FailOnError: "false",
		})
	}
	return nil
}

func (w *Writer) EndCleanTargets() error {
	w.target = nil
	return nil
}

// EndSolution encodes the document to the output.
func (w *Writer) EndSolution() error {
	if w.doc == nil {
		return errors.New("nant: EndSolution without StartSolution")
	}
	if w.Out == nil {
		return errors.New("nant: no output configured")
	}

	if _, err := w.Out.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("write XML header: %w", err)
	}
	encoder := xml.NewEncoder(w.Out)
	encoder.Indent("", "  ")
	if err := encoder.Encode(w.doc); err != nil {
		return fmt.Errorf("encode build file: %w", err)
	}
	if _, err := w.Out.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
