package generate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willibrandon/slingshot/solution"
)

const (
	guidCore = "{11111111-1111-1111-1111-111111111111}"
	guidApp  = "{22222222-2222-2222-2222-222222222222}"
	guidDocs = "{33333333-3333-3333-3333-333333333333}"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func csproj(assembly, outputType, rootNS string, references, files []string) string {
	var b strings.Builder
	b.WriteString("<VisualStudioProject>\n  <CSHARP ProjectType=\"Local\" ProductVersion=\"7.10.3077\" SchemaVersion=\"2.0\">\n    <Build>\n")
	fmt.Fprintf(&b, "      <Settings AssemblyName=%q OutputType=%q RootNamespace=%q>\n", assembly, outputType, rootNS)
	b.WriteString("        <Config Name=\"Debug\" OutputPath=\"bin\\Debug\\\" DefineConstants=\"DEBUG;TRACE\" DebugSymbols=\"true\" WarningLevel=\"4\"/>\n")
	b.WriteString("      </Settings>\n      <References>\n")
	for _, r := range references {
		b.WriteString("        " + r + "\n")
	}
	b.WriteString("      </References>\n    </Build>\n    <Files>\n      <Include>\n")
	for _, f := range files {
		b.WriteString("        " + f + "\n")
	}
	b.WriteString("      </Include>\n    </Files>\n  </CSHARP>\n</VisualStudioProject>\n")
	return b.String()
}

// writeSampleSolution lays out three projects: Core (resources and assembly
// references), App (references Core, depends on it in the manifest) and Docs
// (nothing to compile).
func writeSampleSolution(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "Core/Core.csproj", csproj("Core", "Library", "Acme.Core",
		[]string{
			`<Reference Name="System" AssemblyName="System"/>`,
			`<Reference Name="System.Data" AssemblyName="System.Data" HintPath="..\lib\System.Data.dll"/>`,
			`<Reference Name="log4net" AssemblyName="log4net" HintPath="..\lib\log4net.dll" Private="True"/>`,
		},
		[]string{
			`<File RelPath="Class1.cs" SubType="Code" BuildAction="Compile"/>`,
			`<File RelPath="Form1.resx" BuildAction="EmbeddedResource"/>`,
			`<File RelPath="logo.bmp" BuildAction="EmbeddedResource"/>`,
			`<File RelPath="licenses.licx" BuildAction="None"/>`,
		}))
	writeFile(t, dir, "Core/Form1.resx", "<root/>")

	writeFile(t, dir, "App/App.csproj", csproj("App", "Exe", "Acme.App",
		[]string{`<Reference Name="Core" Project="` + guidCore + `" Package="{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"/>`},
		[]string{`<File RelPath="Program.cs" SubType="Code" BuildAction="Compile"/>`}))

	writeFile(t, dir, "Docs/Docs.csproj", csproj("Docs", "Library", "Docs", nil,
		[]string{`<File RelPath="readme.txt" BuildAction="Content"/>`}))

	project := func(name, guid string) string {
		return fmt.Sprintf("Project(%q) = %q, \"%s\\%s.csproj\", %q\nEndProject\n",
			solution.ProjectTypeCSharp, name, name, name, guid)
	}
	manifest := "Microsoft Visual Studio Solution File, Format Version 8.00\n" +
		project("Core", guidCore) +
		project("App", guidApp) +
		project("Docs", guidDocs) +
		"Global\n" +
		"\tGlobalSection(SolutionConfiguration) = preSolution\n\t\tDebug = Debug\n\tEndGlobalSection\n" +
		"\tGlobalSection(ProjectDependencies) = postSolution\n\t\t" + guidApp + ".0 = " + guidCore + "\n\tEndGlobalSection\n" +
		"EndGlobal\n"
	return writeFile(t, dir, "Sample.sln", manifest)
}

// recorder logs every callback it receives, one line per call.
type recorder struct {
	out    io.Writer
	params Parameters
	calls  []string

	// failOn makes the matching call return errBoom
	failOn string
}

var errBoom = errors.New("boom")

func (r *recorder) add(format string, args ...any) error {
	call := strings.TrimSpace(fmt.Sprintf(format, args...))
	r.calls = append(r.calls, call)
	if r.failOn != "" && call == r.failOn {
		return errBoom
	}
	if r.out != nil {
		_, err := fmt.Fprintln(r.out, call)
		return err
	}
	return nil
}

func (r *recorder) SetOutput(w io.Writer)      { r.out = w }
func (r *recorder) SetParameters(p Parameters) { r.params = p }
func (r *recorder) StartSolution(s *solution.Solution) error {
	return r.add("StartSolution %s", s.Name())
}
func (r *recorder) StartProjectSourceFiles(p *solution.Project) error {
	return r.add("StartProjectSourceFiles %s", p.Name())
}
func (r *recorder) ProjectSourceFile(f *solution.File) error {
	return r.add("ProjectSourceFile %s", f.RelativePath)
}
func (r *recorder) EndProjectSourceFiles() error { return r.add("EndProjectSourceFiles") }
func (r *recorder) StartProjectResXResourceFiles(p *solution.Project) error {
	return r.add("StartProjectResXResourceFiles %s", p.Name())
}
func (r *recorder) ProjectResXResourceFile(f *solution.File) error {
	return r.add("ProjectResXResourceFile %s", f.RelativePath)
}
func (r *recorder) EndProjectResXResourceFiles() error { return r.add("EndProjectResXResourceFiles") }
func (r *recorder) StartProjectResourceFiles(p *solution.Project) error {
	return r.add("StartProjectResourceFiles %s", p.Name())
}
func (r *recorder) ProjectResourceFile(f *solution.File) error {
	return r.add("ProjectResourceFile %s", f.RelativePath)
}
func (r *recorder) EndProjectResourceFiles() error         { return r.add("EndProjectResourceFiles") }
func (r *recorder) StartProject(p *solution.Project) error { return r.add("StartProject %s", p.Name()) }
func (r *recorder) StartProjectDependencies() error        { return r.add("StartProjectDependencies") }
func (r *recorder) ProjectDependency(p *solution.Project) error {
	return r.add("ProjectDependency %s", p.Name())
}
func (r *recorder) FileDependency(f *solution.File) error {
	return r.add("FileDependency %s", f.RelativePath)
}
func (r *recorder) EndProjectDependencies() error     { return r.add("EndProjectDependencies") }
func (r *recorder) StartResXFiles() error             { return r.add("StartResXFiles") }
func (r *recorder) ResXFile(f *solution.File) error   { return r.add("ResXFile %s", f.RelativePath) }
func (r *recorder) EndResXFiles() error               { return r.add("EndResXFiles") }
func (r *recorder) StartAssembly() error              { return r.add("StartAssembly") }
func (r *recorder) StartSourceFiles() error           { return r.add("StartSourceFiles") }
func (r *recorder) SourceFile(f *solution.File) error { return r.add("SourceFile %s", f.RelativePath) }
func (r *recorder) EndSourceFiles() error             { return r.add("EndSourceFiles") }
func (r *recorder) StartReferences() error            { return r.add("StartReferences") }
func (r *recorder) Reference(path string, built bool) error {
	return r.add("Reference %s %t", path, built)
}
func (r *recorder) ProjectReference(p *solution.Project) error {
	return r.add("ProjectReference %s", p.Name())
}
func (r *recorder) EndReferences() error  { return r.add("EndReferences") }
func (r *recorder) StartResources() error { return r.add("StartResources") }
func (r *recorder) Resource(path, name string, resx bool) error {
	return r.add("Resource %s|%s|%t", path, name, resx)
}
func (r *recorder) EndResources() error               { return r.add("EndResources") }
func (r *recorder) EndAssembly() error                { return r.add("EndAssembly") }
func (r *recorder) StartCopyProjectAssemblies() error { return r.add("StartCopyProjectAssemblies") }
func (r *recorder) CopyProjectAssembly(p *solution.Project) error {
	return r.add("CopyProjectAssembly %s", p.Name())
}
func (r *recorder) EndCopyProjectAssemblies() error { return r.add("EndCopyProjectAssemblies") }
func (r *recorder) EndProject() error               { return r.add("EndProject") }
func (r *recorder) StartCleanTargets() error        { return r.add("StartCleanTargets") }
func (r *recorder) CleanTarget(p *solution.Project) error {
	return r.add("CleanTarget %s", p.Name())
}
func (r *recorder) EndCleanTargets() error { return r.add("EndCleanTargets") }
func (r *recorder) EndSolution() error     { return r.add("EndSolution") }
