package solution

import (
	"os"
	"path/filepath"
	"strings"
)

// File is one source or resource entry of a project.
type File struct {
	// RelativePath is the path from the owning project's directory, using forward slashes
	RelativePath string

	// BuildAction classifies how the file participates in the build
	BuildAction string

	// SubType is the designer sub type (Code, Form, Component, ...)
	SubType string

	fromSolution string
	absolutePath string
	resourceName string
	projectGUID  string
}

// newFile derives every path of a file from its owning project.
func newFile(p *Project, relPath, buildAction, subType string) *File {
	rel := NormalizePath(relPath)
	f := &File{
		RelativePath: rel,
		BuildAction:  buildAction,
		SubType:      subType,
		projectGUID:  p.guid,
		fromSolution: JoinRelative(p.RelativeDir(), rel),
	}
	if p.path != "" {
		f.absolutePath = ResolvePath(filepath.Dir(p.path), rel)
	}

	dotted := strings.ReplaceAll(rel, "/", ".")
	if p.rootNamespace != "" {
		f.resourceName = p.rootNamespace + "." + dotted
	} else {
		f.resourceName = dotted
	}
	return f
}

// RelativePathFromSolutionDirectory returns the file path relative to the solution directory.
func (f *File) RelativePathFromSolutionDirectory() string {
	return f.fromSolution
}

// AbsolutePath returns the file path on disk.
func (f *File) AbsolutePath() string {
	return f.absolutePath
}

// ResourceName returns the default manifest resource name: root namespace plus dotted relative path.
func (f *File) ResourceName() string {
	return f.resourceName
}

// ProjectGUID returns the GUID of the owning project.
func (f *File) ProjectGUID() string {
	return f.projectGUID
}

// Name returns the file name without directories.
func (f *File) Name() string {
	return filepath.Base(filepath.FromSlash(f.RelativePath))
}

// IsResX reports whether the file is a .resx resource.
func (f *File) IsResX() bool {
	return strings.EqualFold(filepath.Ext(f.RelativePath), ".resx")
}

// Size returns the file size on disk; missing files report zero.
func (f *File) Size() int64 {
	if f.absolutePath == "" {
		return 0
	}
	info, err := os.Stat(f.absolutePath)
	if err != nil {
		return 0
	}
	return info.Size()
}
