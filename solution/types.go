// Package solution parses Visual Studio .NET solution manifests together with the
// project files (.csproj, .vbproj, .vcproj) and enterprise template containers (.etp)
// they reference, and resolves the dependency graph between projects.
package solution

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeader indicates the manifest does not start with the solution file signature
	ErrInvalidHeader = errors.New("invalid solution file header")

	// ErrMalformedDeclaration indicates a Project(...) line that does not match the declaration pattern
	ErrMalformedDeclaration = errors.New("malformed project declaration")

	// ErrUnmappedURI indicates a URL project path with no matching URI map entry
	ErrUnmappedURI = errors.New("no URI mapping for project path")

	// ErrProjectNotFound indicates a project reference that cannot be resolved in the solution
	ErrProjectNotFound = errors.New("referenced project not found in solution")
)

// ParseError represents an error during solution or project file parsing
type ParseError struct {
	// FilePath is the path to the file being parsed
	FilePath string

	// Line is the line number where the error occurred
	Line int

	// Message describes what went wrong
	Message string

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, msg)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, msg)
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Solution manifest constants
const (
	// HeaderSignature is the required prefix of the first manifest line
	HeaderSignature = "Microsoft Visual Studio Solution File, Format Version"

	// ProjectTypeCSharp identifies a C# project declaration
	ProjectTypeCSharp = "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"

	// ProjectTypeVB identifies a VB.NET project declaration
	ProjectTypeVB = "{F184B08F-C81C-45F6-A57F-5ABD9991F28F}"

	// ProjectTypeVC identifies a Visual C++ project declaration
	ProjectTypeVC = "{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}"

	// ProjectTypeEnterprise identifies an enterprise template (container) declaration
	ProjectTypeEnterprise = "{FE3BBBB6-72D5-11D2-9ACE-00C04F79A2A4}"

	// ProjectTypeSolutionFolder identifies a solution folder
	ProjectTypeSolutionFolder = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"
)

// Type is the resolved kind of a parsed project file.
type Type string

// Project types
const (
	TypeUnknown Type = ""
	TypeCSLocal Type = "C# Local"
	TypeCSWeb   Type = "C# Web"
	TypeVBLocal Type = "VB Local"
	TypeVBWeb   Type = "VB Web"
	TypeVC      Type = "Visual C++"
)

// IsCSharp reports whether t is one of the C# project types.
func (t Type) IsCSharp() bool {
	return t == TypeCSLocal || t == TypeCSWeb
}

// IsVB reports whether t is one of the VB.NET project types.
func (t Type) IsVB() bool {
	return t == TypeVBLocal || t == TypeVBWeb
}

// IsManaged reports whether t is one of the four managed types a solution registers.
func (t Type) IsManaged() bool {
	return t.IsCSharp() || t.IsVB()
}

// Build actions
const (
	BuildActionCompile          = "Compile"
	BuildActionEmbeddedResource = "EmbeddedResource"
	BuildActionContent          = "Content"
	BuildActionNone             = "None"
)

// Output types
const (
	OutputLibrary = "Library"
	OutputExe     = "Exe"
	OutputWinExe  = "WinExe"
)

// isStandardProjectType reports whether a declaration type GUID names a project file.
func isStandardProjectType(typeGUID string) bool {
	switch typeGUID {
	case ProjectTypeCSharp, ProjectTypeVB, ProjectTypeVC:
		return true
	}
	return false
}
