package solution

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/willibrandon/slingshot/observability"
)

var (
	// Project("{TYPE}") = "Name", "Path", "{GUID}"
	projectRegex = regexp.MustCompile(
		`(?i)^Project\("(\{[A-F0-9-]+\})"\)\s*=\s*"([^"]*)",\s*"([^"]*)",\s*"(\{[A-F0-9-]+\})"`,
	)

	// {SOURCE}.N = {TARGET} inside GlobalSection(ProjectDependencies)
	dependencyRegex = regexp.MustCompile(`(?i)^\s*(\{[A-F0-9-]+\})\.\d+\s*=\s*(\{[A-F0-9-]+\})`)

	// {TARGET} = {TARGET} inside ProjectSection(ProjectDependencies)
	projectDependencyRegex = regexp.MustCompile(`(?i)^\s*(\{[A-F0-9-]+\})\s*=\s*(\{[A-F0-9-]+\})`)

	formatVersionRegex = regexp.MustCompile(`Format Version\s+(\S+)`)
)

// edge is a dependency declaration waiting for both endpoints to be registered.
type edge struct {
	source string
	target string
	line   int
}

// Read parses the solution manifest at path, reading every declared project and
// container and resolving the dependency section.
func (s *Solution) Read(ctx context.Context, path string, uriMap URIMap) (err error) {
	ctx, span := observability.StartSolutionReadSpan(ctx, path)
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		observability.SolutionsReadTotal.WithLabelValues(status).Inc()
		observability.EndSpanWithError(span, err)
	}()

	absPath, absErr := filepath.Abs(path)
	if absErr != nil {
		absPath = path
	}

	data, readErr := os.ReadFile(absPath)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return &ParseError{FilePath: absPath, Message: "solution file not found", Err: readErr}
		}
		return &ParseError{FilePath: absPath, Message: "cannot read solution file", Err: readErr}
	}

	s.path = absPath
	s.dir = filepath.Dir(absPath)
	s.name = strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	log := s.logger.ForContext("Solution", s.name)

	scanner := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		lineNum          int
		headerSeen       bool
		inDependencies   bool
		inProjectDeps    bool
		inConfigurations bool
		current          string
		pending          []edge
	)

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if !headerSeen {
			if trimmed == "" {
				continue
			}
			if !strings.HasPrefix(trimmed, HeaderSignature) {
				return &ParseError{FilePath: absPath, Line: lineNum, Err: ErrInvalidHeader}
			}
			if m := formatVersionRegex.FindStringSubmatch(trimmed); m != nil {
				s.formatVersion = m[1]
			}
			headerSeen = true
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "Project("):
			m := projectRegex.FindStringSubmatch(trimmed)
			if m == nil {
				return &ParseError{FilePath: absPath, Line: lineNum, Err: ErrMalformedDeclaration}
			}
			current = NormalizeGUID(m[4])
			if err := s.declare(ctx, uriMap, NormalizeGUID(m[1]), m[2], m[3], current, lineNum); err != nil {
				return err
			}
			continue

		case trimmed == "EndProject":
			current = ""
			inProjectDeps = false
			continue

		case strings.HasPrefix(trimmed, "ProjectSection(ProjectDependencies)"):
			inProjectDeps = true
			continue

		case trimmed == "EndProjectSection":
			inProjectDeps = false
			continue

		case strings.HasPrefix(trimmed, "GlobalSection(ProjectDependencies)"):
			inDependencies = true
			continue

		case strings.HasPrefix(trimmed, "GlobalSection(SolutionConfiguration)"),
			strings.HasPrefix(trimmed, "GlobalSection(SolutionConfigurationPlatforms)"):
			inConfigurations = true
			continue

		case trimmed == "EndGlobalSection":
			inDependencies = false
			inConfigurations = false
			continue
		}

		switch {
		case inDependencies:
			if m := dependencyRegex.FindStringSubmatch(line); m != nil {
				pending = append(pending, edge{source: NormalizeGUID(m[1]), target: NormalizeGUID(m[2]), line: lineNum})
			}
		case inProjectDeps && current != "":
			if m := projectDependencyRegex.FindStringSubmatch(line); m != nil {
				pending = append(pending, edge{source: current, target: NormalizeGUID(m[2]), line: lineNum})
			}
		case inConfigurations:
			if name, _, ok := strings.Cut(trimmed, "="); ok {
				s.addSolutionConfiguration(strings.TrimSpace(name))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return &ParseError{FilePath: absPath, Line: lineNum, Message: "error reading file", Err: err}
	}
	if !headerSeen {
		return &ParseError{FilePath: absPath, Err: ErrInvalidHeader}
	}

	for _, e := range pending {
		source, ok := s.projects[e.source]
		target, ok2 := s.projects[e.target]
		if !ok || !ok2 {
			observability.DependencyEdgesTotal.WithLabelValues("dropped").Inc()
			log.Debug("Dropping dependency {Source} -> {Target} on line {Line}", e.source, e.target, e.line)
			continue
		}
		observability.DependencyEdgesTotal.WithLabelValues("accepted").Inc()
		s.addDependency(source, target)
	}

	log.Info("Read solution with {ProjectCount} projects", len(s.order))
	return nil
}

// declare handles one Project(...) line.
func (s *Solution) declare(ctx context.Context, uriMap URIMap, typeGUID, name, path, guid string, line int) error {
	switch {
	case isStandardProjectType(typeGUID):
		rel, err := s.localPath(uriMap, path, line)
		if err != nil {
			return err
		}
		_, span := observability.StartProjectReadSpan(ctx, name, rel)
		p := NewProject(s, guid, name, rel)
		err = p.Read(ResolvePath(s.dir, rel))
		observability.EndSpanWithError(span, err)
		if err != nil {
			return err
		}
		if p.IsManaged() {
			s.register(p)
		} else {
			s.logger.Debug("Not registering {Type} project {Project}", string(p.Type()), name)
		}

	case typeGUID == ProjectTypeEnterprise:
		rel, err := s.localPath(uriMap, path, line)
		if err != nil {
			return err
		}
		_, span := observability.StartProjectReadSpan(ctx, name, rel)
		e := NewEnterpriseProject(s, nil, guid, name, rel)
		err = e.Read(ResolvePath(s.dir, rel))
		observability.EndSpanWithError(span, err)
		if err != nil {
			return err
		}
		for _, p := range e.Projects() {
			s.register(p)
		}
	}
	return nil
}

// localPath remaps URL project paths through uriMap and normalizes the result.
func (s *Solution) localPath(uriMap URIMap, path string, line int) (string, error) {
	if !isURL(path) {
		return NormalizePath(path), nil
	}
	local, ok := uriMap.Resolve(path)
	if !ok {
		return "", &ParseError{
			FilePath: s.path,
			Line:     line,
			Message:  fmt.Sprintf("project path %s", path),
			Err:      ErrUnmappedURI,
		}
	}
	return NormalizePath(local), nil
}

func (s *Solution) addSolutionConfiguration(name string) {
	if name == "" {
		return
	}
	for _, existing := range s.configurations {
		if existing == name {
			return
		}
	}
	s.configurations = append(s.configurations, name)
}
