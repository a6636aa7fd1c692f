package solution

import (
	"path/filepath"
	"strings"
)

// EnterpriseProject is an enterprise template (.etp) container whose entries are
// projects or nested containers.
type EnterpriseProject struct {
	solution *Solution
	parent   *EnterpriseProject

	guid         string
	name         string
	relativePath string
	path         string
	read         bool

	doc         *etpDocument
	subProjects []*EnterpriseProject
	projects    []*Project
}

// NewEnterpriseProject creates an unparsed container. parent is nil for a
// container declared directly in the solution.
func NewEnterpriseProject(sol *Solution, parent *EnterpriseProject, guid, name, relativePath string) *EnterpriseProject {
	return &EnterpriseProject{
		solution:     sol,
		parent:       parent,
		guid:         NormalizeGUID(guid),
		name:         name,
		relativePath: NormalizePath(relativePath),
	}
}

// IsEnterpriseFile checks if a file path has the container extension
func IsEnterpriseFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".etp")
}

// Read parses the container at path, then every nested container and project
// it lists. Files without the .etp extension are ignored.
func (e *EnterpriseProject) Read(path string) error {
	if !IsEnterpriseFile(path) {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	var cache *Cache
	if e.solution != nil {
		cache = e.solution.cache
	}
	doc, err := cache.container(abs)
	if err != nil {
		return &ParseError{FilePath: abs, Message: "cannot read enterprise template", Err: err}
	}

	e.doc = doc
	e.path = abs
	if e.name == "" {
		e.name = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}
	e.read = true

	if err := e.readSubProjects(); err != nil {
		return err
	}
	return e.readProjects()
}

// referenceGUID looks an entry up among the container's reference declarations,
// trying both casings of the references section.
func (e *EnterpriseProject) referenceGUID(file string) string {
	want := NormalizePath(file)
	for _, refs := range [][]etpReference{e.doc.General.References, e.doc.General.UpperReferences} {
		for _, r := range refs {
			if strings.EqualFold(NormalizePath(strings.TrimSpace(r.File)), want) {
				return NormalizeGUID(r.GUID)
			}
		}
	}
	return ""
}

// etpEntry is one file listed by a container.
type etpEntry struct {
	file     string // as written in the container
	relative string // from the solution directory
	abs      string
}

func (e *EnterpriseProject) entries() []etpEntry {
	out := make([]etpEntry, 0, len(e.doc.General.Files))
	dir := filepath.Dir(e.path)
	for _, f := range e.doc.General.Files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		out = append(out, etpEntry{file: f, relative: JoinRelative(e.RelativeDir(), f), abs: ResolvePath(dir, f)})
	}
	return out
}

func entryName(file string) string {
	base := filepath.Base(filepath.FromSlash(NormalizePath(file)))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (e *EnterpriseProject) readSubProjects() error {
	for _, entry := range e.entries() {
		if !IsEnterpriseFile(entry.file) || e.encloses(entry.abs) {
			continue
		}
		sub := NewEnterpriseProject(e.solution, e, e.referenceGUID(entry.file), entryName(entry.file), entry.relative)
		if err := sub.Read(entry.abs); err != nil {
			return err
		}
		e.subProjects = append(e.subProjects, sub)
	}
	return nil
}

// encloses reports whether path is this container or one of its ancestors.
func (e *EnterpriseProject) encloses(path string) bool {
	for c := e; c != nil; c = c.parent {
		if c.path == path {
			return true
		}
	}
	return false
}

func (e *EnterpriseProject) readProjects() error {
	for _, entry := range e.entries() {
		if !isManagedProjectFile(entry.file) {
			continue
		}
		p := NewProject(e.solution, e.referenceGUID(entry.file), entryName(entry.file), entry.relative)
		if err := p.Read(entry.abs); err != nil {
			return err
		}
		// Only C# projects survive flattening; VB entries are dropped here.
		if p.IsCSharp() {
			e.projects = append(e.projects, p)
		} else if e.solution != nil {
			e.solution.logger.Debug("Skipping {Type} project {Project} inside container {Container}", string(p.Type()), p.Name(), e.name)
		}
	}
	for _, sub := range e.subProjects {
		e.projects = append(e.projects, sub.Projects()...)
	}
	return nil
}

// GUID returns the container GUID in canonical form.
func (e *EnterpriseProject) GUID() string { return e.guid }

// Name returns the container name.
func (e *EnterpriseProject) Name() string { return e.name }

// RelativePath returns the container path relative to the solution directory.
func (e *EnterpriseProject) RelativePath() string { return e.relativePath }

// RelativeDir returns the directory of RelativePath.
func (e *EnterpriseProject) RelativeDir() string { return relativeDir(e.relativePath) }

// Path returns the absolute path of the parsed container.
func (e *EnterpriseProject) Path() string { return e.path }

// Parent returns the enclosing container, nil at the top level.
func (e *EnterpriseProject) Parent() *EnterpriseProject { return e.parent }

// IsRead reports whether Read parsed a container file.
func (e *EnterpriseProject) IsRead() bool { return e.read }

// SubProjects returns the nested containers in entry order.
func (e *EnterpriseProject) SubProjects() []*EnterpriseProject { return e.subProjects }

// Projects returns the flattened C# projects of this container and all nested containers.
func (e *EnterpriseProject) Projects() []*Project { return e.projects }
