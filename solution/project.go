package solution

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/willibrandon/slingshot/observability"
)

// Project is one parsed project file (.csproj, .vbproj or .vcproj).
type Project struct {
	solution *Solution

	guid         string
	name         string
	relativePath string
	path         string
	typ          Type
	read         bool

	assemblyName  string
	outputType    string
	rootNamespace string

	files          []*File
	references     []*Reference
	configurations []*Configuration
}

// NewProject creates an unparsed project that belongs to sol. relativePath is
// relative to the solution directory, or absolute for remapped web projects.
func NewProject(sol *Solution, guid, name, relativePath string) *Project {
	return &Project{
		solution:     sol,
		guid:         NormalizeGUID(guid),
		name:         name,
		relativePath: NormalizePath(relativePath),
	}
}

// IsProjectFile checks if a file path has a recognized project file extension
func IsProjectFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csproj", ".vbproj", ".vcproj":
		return true
	}
	return false
}

// isManagedProjectFile checks for the C# and VB project extensions only
func isManagedProjectFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csproj", ".vbproj":
		return true
	}
	return false
}

// Read parses the project file at path. Files without a project extension are
// ignored and leave the project unparsed.
func (p *Project) Read(path string) error {
	if !IsProjectFile(path) {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	doc, err := p.cache().project(abs)
	if err != nil {
		return &ParseError{FilePath: abs, Message: "cannot read project file", Err: err}
	}

	p.path = abs

	switch {
	case doc.CSharp != nil:
		p.loadManaged(managedType(TypeCSLocal, TypeCSWeb, doc.CSharp.ProjectType), doc.CSharp)
	case doc.VisualBasic != nil:
		p.loadManaged(managedType(TypeVBLocal, TypeVBWeb, doc.VisualBasic.ProjectType), doc.VisualBasic)
	case strings.EqualFold(doc.ProjectType, string(TypeVC)):
		p.loadVC(doc)
	}
	if p.name == "" {
		p.name = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}
	p.read = true

	label := string(p.typ)
	if label == "" {
		label = "unknown"
	}
	observability.ProjectsParsedTotal.WithLabelValues(label).Inc()
	p.logger().Debug("Parsed project {Project} ({Type}) with {FileCount} files", p.name, label, len(p.files))
	return nil
}

func managedType(local, web Type, projectType string) Type {
	switch {
	case strings.EqualFold(projectType, "Local"):
		return local
	case strings.EqualFold(projectType, "Web"):
		return web
	}
	return TypeUnknown
}

func (p *Project) loadManaged(t Type, el *managedElement) {
	p.typ = t
	if p.guid == "" {
		p.guid = NormalizeGUID(el.ProjectGUID)
	}

	if t != TypeUnknown {
		p.assemblyName = el.Settings.AssemblyName
		p.outputType = el.Settings.OutputType
		p.rootNamespace = el.Settings.RootNamespace
	}

	p.files = make([]*File, 0, len(el.Files))
	for _, f := range el.Files {
		rel := f.RelPath
		if f.Link != "" {
			rel = f.Link
		}
		p.files = append(p.files, newFile(p, rel, f.BuildAction, f.SubType))
	}

	p.references = make([]*Reference, 0, len(el.References))
	for _, r := range el.References {
		p.references = append(p.references, newReference(p, r))
	}

	p.configurations = make([]*Configuration, 0, len(el.Settings.Configs))
	for _, c := range el.Settings.Configs {
		p.configurations = append(p.configurations, newConfiguration(t, c))
	}
}

func (p *Project) loadVC(doc *vsProjectDocument) {
	p.typ = TypeVC
	if p.guid == "" {
		p.guid = NormalizeGUID(doc.ProjectGUID)
	}
	if doc.Name != "" && p.name == "" {
		p.name = doc.Name
	}
	p.rootNamespace = doc.RootNamespace

	entries := doc.Files.collect(nil)
	p.files = make([]*File, 0, len(entries))
	for _, f := range entries {
		action := BuildActionNone
		switch strings.ToLower(filepath.Ext(f.RelativePath)) {
		case ".c", ".cc", ".cpp", ".cxx":
			action = BuildActionCompile
		}
		p.files = append(p.files, newFile(p, f.RelativePath, action, ""))
	}

	p.configurations = make([]*Configuration, 0, len(doc.Configurations))
	for _, c := range doc.Configurations {
		p.configurations = append(p.configurations, newVCConfiguration(c))
	}
}

func (p *Project) cache() *Cache {
	if p.solution != nil {
		return p.solution.cache
	}
	return nil
}

func (p *Project) logger() observability.Logger {
	if p.solution != nil {
		return p.solution.logger
	}
	return observability.NewNullLogger()
}

// GUID returns the project GUID in canonical form.
func (p *Project) GUID() string { return p.guid }

// Name returns the display name.
func (p *Project) Name() string { return p.name }

// RelativePath returns the project file path relative to the solution directory.
func (p *Project) RelativePath() string { return p.relativePath }

// RelativeDir returns the directory of RelativePath, "" when the project sits next to the solution.
func (p *Project) RelativeDir() string { return relativeDir(p.relativePath) }

// Path returns the absolute path of the parsed project file.
func (p *Project) Path() string { return p.path }

// Dir returns the absolute directory of the parsed project file.
func (p *Project) Dir() string {
	if p.path == "" {
		return ""
	}
	return filepath.Dir(p.path)
}

// Solution returns the owning solution, if any.
func (p *Project) Solution() *Solution { return p.solution }

// Type returns the resolved project type.
func (p *Project) Type() Type { return p.typ }

// IsRead reports whether Read parsed a project file.
func (p *Project) IsRead() bool { return p.read }

// AssemblyName returns the configured assembly name.
func (p *Project) AssemblyName() string { return p.assemblyName }

// OutputType returns Library, Exe or WinExe.
func (p *Project) OutputType() string { return p.outputType }

// RootNamespace returns the default namespace.
func (p *Project) RootNamespace() string { return p.rootNamespace }

// OutputFile returns the assembly file name selected by output type.
func (p *Project) OutputFile() string {
	ext := ""
	switch {
	case strings.EqualFold(p.outputType, OutputLibrary):
		ext = ".dll"
	case strings.EqualFold(p.outputType, OutputExe), strings.EqualFold(p.outputType, OutputWinExe):
		ext = ".exe"
	}
	return p.assemblyName + ext
}

// Files returns every file entry in declaration order.
func (p *Project) Files() []*File { return p.files }

// References returns every reference declaration in declaration order.
func (p *Project) References() []*Reference { return p.references }

// Configurations returns every build configuration in declaration order.
func (p *Project) Configurations() []*Configuration { return p.configurations }

// Configuration returns the configuration with the given name.
func (p *Project) Configuration(name string) (*Configuration, bool) {
	for _, c := range p.configurations {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

// CountFiles counts the files with the given build action.
func (p *Project) CountFiles(buildAction string) int {
	n := 0
	for _, f := range p.files {
		if strings.EqualFold(f.BuildAction, buildAction) {
			n++
		}
	}
	return n
}

func (p *Project) filterFiles(keep func(*File) bool) []*File {
	var out []*File
	for _, f := range p.files {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// SourceFiles returns the files compiled into the assembly.
func (p *Project) SourceFiles() []*File {
	return p.filterFiles(func(f *File) bool {
		return strings.EqualFold(f.BuildAction, BuildActionCompile)
	})
}

// ResXResourceFiles returns embedded .resx resources that are not empty on disk.
func (p *Project) ResXResourceFiles() []*File {
	return p.filterFiles(func(f *File) bool {
		return strings.EqualFold(f.BuildAction, BuildActionEmbeddedResource) && f.IsResX() && f.Size() > 0
	})
}

// NonResXResourceFiles returns embedded resources other than .resx files.
func (p *Project) NonResXResourceFiles() []*File {
	return p.filterFiles(func(f *File) bool {
		return strings.EqualFold(f.BuildAction, BuildActionEmbeddedResource) && !f.IsResX()
	})
}

// SystemReferences returns assembly and COM references.
func (p *Project) SystemReferences() []*Reference {
	var out []*Reference
	for _, r := range p.references {
		if r.Kind == ReferenceAssemblyName || r.Kind == ReferenceGUID {
			out = append(out, r)
		}
	}
	return out
}

// ReferencedProjects resolves every project reference through the owning solution.
// An unresolvable reference is an error.
func (p *Project) ReferencedProjects() ([]*Project, error) {
	var out []*Project
	for _, r := range p.references {
		if r.Kind != ReferenceProject {
			continue
		}
		var target *Project
		if p.solution != nil {
			if t, ok := p.solution.Project(r.ProjectGUID); ok {
				target = t
			} else if t, ok := p.solution.ProjectByName(r.Name); ok {
				target = t
			}
		}
		if target == nil {
			return nil, fmt.Errorf("project %s references %q %s: %w", p.name, r.Name, r.ProjectGUID, ErrProjectNotFound)
		}
		out = append(out, target)
	}
	return out, nil
}

// IsCSharp reports whether the project is a C# project.
func (p *Project) IsCSharp() bool { return p.typ.IsCSharp() }

// IsVB reports whether the project is a VB.NET project.
func (p *Project) IsVB() bool { return p.typ.IsVB() }

// IsManaged reports whether the project is one of the four managed types.
func (p *Project) IsManaged() bool { return p.typ.IsManaged() }
