package solution

import (
	"strconv"
	"strings"
)

// ReferenceKind discriminates the three forms a project reference can take.
type ReferenceKind int

const (
	// ReferenceUnknown is a declaration with none, or more than one, of the kind attributes
	ReferenceUnknown ReferenceKind = iota
	// ReferenceAssemblyName is an external system or library assembly
	ReferenceAssemblyName
	// ReferenceProject is another project in the same solution
	ReferenceProject
	// ReferenceGUID is a COM type library imported through an interop assembly
	ReferenceGUID
)

func (k ReferenceKind) String() string {
	switch k {
	case ReferenceAssemblyName:
		return "AssemblyName"
	case ReferenceProject:
		return "Project"
	case ReferenceGUID:
		return "Guid"
	default:
		return "Unknown"
	}
}

// Reference is one dependency declaration found inside a project file.
type Reference struct {
	// Name is the display name of the reference
	Name string

	// Kind is determined by which kind attribute is present
	Kind ReferenceKind

	// AssemblyName is set for ReferenceAssemblyName
	AssemblyName string

	// ProjectGUID is set for ReferenceProject
	ProjectGUID string

	// TypeLibGUID is set for ReferenceGUID
	TypeLibGUID string

	// HintPath is the optional explicit source path
	HintPath string

	// CopyLocal reports whether the referenced assembly is copied to the output directory
	CopyLocal bool

	owner *Project
}

func newReference(owner *Project, el referenceElement) *Reference {
	r := &Reference{
		Name:         el.Name,
		AssemblyName: el.AssemblyName,
		HintPath:     NormalizePath(el.HintPath),
		owner:        owner,
	}
	if el.Project != "" {
		r.ProjectGUID = NormalizeGUID(el.Project)
	}
	if el.GUID != "" {
		r.TypeLibGUID = NormalizeGUID(el.GUID)
	}

	set := 0
	for _, v := range []string{el.AssemblyName, el.Project, el.GUID} {
		if v != "" {
			set++
		}
	}
	if set == 1 {
		switch {
		case el.AssemblyName != "":
			r.Kind = ReferenceAssemblyName
		case el.Project != "":
			r.Kind = ReferenceProject
		default:
			r.Kind = ReferenceGUID
		}
	}

	r.CopyLocal = r.Kind != ReferenceAssemblyName
	if el.Private != "" {
		if v, err := strconv.ParseBool(strings.TrimSpace(el.Private)); err == nil {
			r.CopyLocal = v
		}
	}
	return r
}

// Value returns the resolved reference value, whose meaning depends on Kind:
// the assembly name, the referenced project's name, or the interop assembly name.
func (r *Reference) Value() string {
	switch r.Kind {
	case ReferenceAssemblyName:
		return r.AssemblyName
	case ReferenceProject:
		if r.owner != nil && r.owner.solution != nil {
			if p, ok := r.owner.solution.Project(r.ProjectGUID); ok {
				return p.Name()
			}
		}
		return r.ProjectGUID
	case ReferenceGUID:
		return "Interop." + r.Name
	default:
		return ""
	}
}
