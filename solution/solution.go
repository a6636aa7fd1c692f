package solution

import (
	"context"

	"github.com/willibrandon/slingshot/observability"
)

// Solution is a parsed solution manifest together with every registered project
// and the dependency graph between them.
type Solution struct {
	path          string
	dir           string
	name          string
	formatVersion string

	// projects is keyed by canonical project GUID; order keeps declaration order
	projects     map[string]*Project
	order        []string
	dependencies map[string][]*Project

	configurations []string

	logger observability.Logger
	cache  *Cache
}

// Option configures a Solution.
type Option func(*Solution)

// WithLogger sets the logger used for tolerated inconsistencies and progress.
func WithLogger(l observability.Logger) Option {
	return func(s *Solution) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache shares a parsed-document cache between solutions.
func WithCache(c *Cache) Option {
	return func(s *Solution) {
		s.cache = c
	}
}

// New creates an empty solution.
func New(opts ...Option) *Solution {
	s := &Solution{
		projects:     make(map[string]*Project),
		dependencies: make(map[string][]*Project),
		logger:       observability.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load creates a solution and reads the manifest at path.
func Load(ctx context.Context, path string, uriMap URIMap, opts ...Option) (*Solution, error) {
	s := New(opts...)
	if err := s.Read(ctx, path, uriMap); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the solution name (manifest file name without extension).
func (s *Solution) Name() string { return s.name }

// Dir returns the absolute solution directory.
func (s *Solution) Dir() string { return s.dir }

// Path returns the absolute manifest path.
func (s *Solution) Path() string { return s.path }

// FormatVersion returns the manifest format version, e.g. "8.00".
func (s *Solution) FormatVersion() string { return s.formatVersion }

// SolutionConfigurations returns the configuration names declared by the manifest itself.
func (s *Solution) SolutionConfigurations() []string { return s.configurations }

// register adds p unless a project with the same GUID is already known.
func (s *Solution) register(p *Project) {
	if _, ok := s.projects[p.GUID()]; ok {
		s.logger.Debug("Ignoring duplicate project {Guid} ({Project})", p.GUID(), p.Name())
		return
	}
	s.projects[p.GUID()] = p
	s.order = append(s.order, p.GUID())
}

// Projects returns every registered project in declaration order.
func (s *Solution) Projects() []*Project {
	out := make([]*Project, 0, len(s.order))
	for _, guid := range s.order {
		out = append(out, s.projects[guid])
	}
	return out
}

// Project finds a project by GUID.
func (s *Solution) Project(guid string) (*Project, bool) {
	p, ok := s.projects[NormalizeGUID(guid)]
	return p, ok
}

// ProjectByName finds the first project, in declaration order, with the given name.
func (s *Solution) ProjectByName(name string) (*Project, bool) {
	for _, guid := range s.order {
		if p := s.projects[guid]; p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// addDependency records that source depends on target, ignoring repeats.
func (s *Solution) addDependency(source, target *Project) {
	for _, existing := range s.dependencies[source.GUID()] {
		if existing == target {
			return
		}
	}
	s.dependencies[source.GUID()] = append(s.dependencies[source.GUID()], target)
}

// Dependencies returns the projects source directly depends on, as declared by the manifest.
func (s *Solution) Dependencies(source *Project) []*Project {
	deps := s.dependencies[source.GUID()]
	out := make([]*Project, len(deps))
	copy(out, deps)
	return out
}

// IsDependant reports whether target is reachable from source through one or
// more dependency edges. A dependency cycle terminates the walk.
func (s *Solution) IsDependant(source, target *Project) bool {
	visited := make(map[*Project]bool)
	var walk func(p *Project) bool
	walk = func(p *Project) bool {
		for _, dep := range s.dependencies[p.GUID()] {
			if dep == target {
				return true
			}
			if visited[dep] {
				continue
			}
			visited[dep] = true
			if walk(dep) {
				return true
			}
		}
		return false
	}
	return walk(source)
}

// AllDependencies returns the manifest dependencies of source followed by the
// projects it references directly, without duplicates.
func (s *Solution) AllDependencies(source *Project) ([]*Project, error) {
	referenced, err := source.ReferencedProjects()
	if err != nil {
		return nil, err
	}

	out := s.Dependencies(source)
	for _, p := range referenced {
		dup := false
		for _, existing := range out {
			if existing == p {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out, nil
}

// ConfigurationNames returns every configuration name used by any project, in first-seen order.
func (s *Solution) ConfigurationNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range s.Projects() {
		for _, c := range p.Configurations() {
			if !seen[c.Name] {
				seen[c.Name] = true
				names = append(names, c.Name)
			}
		}
	}
	return names
}
