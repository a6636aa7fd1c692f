package solution

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	guidCore   = "{11111111-1111-1111-1111-111111111111}"
	guidApp    = "{22222222-2222-2222-2222-222222222222}"
	guidTools  = "{33333333-3333-3333-3333-333333333333}"
	guidNative = "{44444444-4444-4444-4444-444444444444}"
	guidEtp    = "{55555555-5555-5555-5555-555555555555}"
	guidGhost  = "{99999999-9999-9999-9999-999999999999}"
)

// writeFile writes content under dir, creating parent directories.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// projectFixture renders a VS .NET 2003 managed project file.
type projectFixture struct {
	Lang        string // CSHARP or VisualBasic
	ProjectType string // Local or Web
	GUID        string
	Assembly    string
	OutputType  string
	RootNS      string
	Configs     []string
	References  []string
	Files       []string
}

func csharpProject(assembly string) projectFixture {
	return projectFixture{
		Lang:        "CSHARP",
		ProjectType: "Local",
		Assembly:    assembly,
		OutputType:  "Library",
		RootNS:      assembly,
		Configs: []string{
			`<Config Name="Debug" OutputPath="bin\Debug\" DefineConstants="DEBUG;TRACE" DebugSymbols="true" WarningLevel="4" Optimize="false"/>`,
			`<Config Name="Release" OutputPath="bin\Release\" DefineConstants="TRACE" DebugSymbols="false" WarningLevel="4" Optimize="true"/>`,
		},
		Files: []string{
			`<File RelPath="Class1.cs" SubType="Code" BuildAction="Compile"/>`,
		},
	}
}

func vbProject(assembly string) projectFixture {
	f := csharpProject(assembly)
	f.Lang = "VisualBasic"
	f.Configs = []string{
		`<Config Name="Debug" OutputPath="bin\" DefineConstants="" DefineDebug="true" DefineTrace="true" RemoveIntegerChecks="false"/>`,
	}
	f.Files = []string{`<File RelPath="Module1.vb" SubType="Code" BuildAction="Compile"/>`}
	return f
}

func (f projectFixture) xml() string {
	var b strings.Builder
	b.WriteString("<VisualStudioProject>\n")
	fmt.Fprintf(&b, "  <%s ProjectType=%q ProductVersion=\"7.10.3077\" SchemaVersion=\"2.0\" ProjectGuid=%q>\n", f.Lang, f.ProjectType, f.GUID)
	b.WriteString("    <Build>\n")
	fmt.Fprintf(&b, "      <Settings AssemblyName=%q OutputType=%q RootNamespace=%q>\n", f.Assembly, f.OutputType, f.RootNS)
	for _, c := range f.Configs {
		b.WriteString("        " + c + "\n")
	}
	b.WriteString("      </Settings>\n      <References>\n")
	for _, r := range f.References {
		b.WriteString("        " + r + "\n")
	}
	b.WriteString("      </References>\n    </Build>\n    <Files>\n      <Include>\n")
	for _, file := range f.Files {
		b.WriteString("        " + file + "\n")
	}
	fmt.Fprintf(&b, "      </Include>\n    </Files>\n  </%s>\n</VisualStudioProject>\n", f.Lang)
	return b.String()
}

const vcProjectXML = `<?xml version="1.0" encoding="Windows-1252"?>
<VisualStudioProject ProjectType="Visual C++" Version="7.10" Name="Native" ProjectGUID="{44444444-4444-4444-4444-444444444444}" RootNamespace="Native">
  <Configurations>
    <Configuration Name="Debug|Win32" OutputDirectory="Debug"/>
    <Configuration Name="Release|Win32" OutputDirectory="Release"/>
  </Configurations>
  <Files>
    <Filter Name="Source Files">
      <File RelativePath=".\native.cpp"/>
      <Filter Name="Helpers">
        <File RelativePath=".\helpers.c"/>
      </Filter>
    </Filter>
    <Filter Name="Header Files">
      <File RelativePath=".\native.h"/>
    </Filter>
  </Files>
</VisualStudioProject>
`

// slnHeader is the VS .NET 2003 manifest signature line.
const slnHeader = "Microsoft Visual Studio Solution File, Format Version 8.00"

func slnProject(typeGUID, name, path, guid string) string {
	return fmt.Sprintf("Project(%q) = %q, %q, %q\n\tProjectSection(ProjectDependencies) = postProject\n\tEndProjectSection\nEndProject",
		typeGUID, name, path, guid)
}

// slnFixture renders a manifest with the given project blocks and dependency edges.
func slnFixture(projects []string, edges ...string) string {
	var b strings.Builder
	b.WriteString(slnHeader + "\n")
	for _, p := range projects {
		b.WriteString(p + "\n")
	}
	b.WriteString("Global\n")
	b.WriteString("\tGlobalSection(SolutionConfiguration) = preSolution\n\t\tDebug = Debug\n\t\tRelease = Release\n\tEndGlobalSection\n")
	b.WriteString("\tGlobalSection(ProjectDependencies) = postSolution\n")
	for _, e := range edges {
		b.WriteString("\t\t" + e + "\n")
	}
	b.WriteString("\tEndGlobalSection\nEndGlobal\n")
	return b.String()
}

// loadFixture writes the manifest to dir and reads it.
func loadFixture(t *testing.T, dir, manifest string, uriMap URIMap) *Solution {
	t.Helper()
	path := writeFile(t, dir, "Sample.sln", manifest)
	sol, err := Load(context.Background(), path, uriMap)
	require.NoError(t, err)
	return sol
}
