package outline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/slingshot/generate"
)

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	project := func(assembly, outputType, refs, files string) string {
		return `<VisualStudioProject>
  <CSHARP ProjectType="Local">
    <Build>
      <Settings AssemblyName="` + assembly + `" OutputType="` + outputType + `" RootNamespace="` + assembly + `">
        <Config Name="Debug" OutputPath="bin\Debug\"/>
      </Settings>
      <References>` + refs + `</References>
    </Build>
    <Files><Include>` + files + `</Include></Files>
  </CSHARP>
</VisualStudioProject>
`
	}
	files := map[string]string{
		"Lib/Lib.csproj": project("Lib", "Library",
			`<Reference Name="System" AssemblyName="System"/>`,
			`<File RelPath="Lib.cs" BuildAction="Compile"/><File RelPath="Strings.resx" BuildAction="EmbeddedResource"/>`),
		"Lib/Strings.resx": "<root/>",
		"Hello/Hello.csproj": project("Hello", "Exe",
			`<Reference Name="Lib" Project="{11111111-1111-1111-1111-111111111111}" Package="{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"/>`,
			`<File RelPath="Program.cs" BuildAction="Compile"/>`),
		"Sample.sln": "Microsoft Visual Studio Solution File, Format Version 8.00\n" +
			`Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Lib", "Lib\Lib.csproj", "{11111111-1111-1111-1111-111111111111}"` + "\nEndProject\n" +
			`Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Hello", "Hello\Hello.csproj", "{22222222-2222-2222-2222-222222222222}"` + "\nEndProject\n" +
			"Global\n\tGlobalSection(SolutionConfiguration) = preSolution\n\t\tDebug = Debug\n\t\tRelease = Release\n\tEndGlobalSection\nEndGlobal\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return filepath.Join(dir, "Sample.sln")
}

func TestWriter_Outline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate.WriteSolution(context.Background(), New(), &buf, writeSample(t), nil, nil))

	want := `solution Sample (format 8.00)
  configurations: Debug, Release
  sources of Lib
    Lib.cs
  resx resources of Lib
    Strings.resx
  sources of Hello
    Program.cs
  project Lib (C# Local) -> Lib.dll
    depends on
      file Lib/Lib.cs
      file Lib/Strings.resx
    compile resx
      Lib/Strings.resx
    assembly
      sources
        Lib.cs
      references
        System.dll
      resources
        Lib.Strings.resources (compiled resx)
    copy
  project Hello (C# Local) -> Hello.exe
    depends on
      project Lib
      file Hello/Program.cs
    assembly
      sources
        Program.cs
      references
        Lib.dll (project Lib)
      resources
    copy
      Lib.dll
  clean
    Lib.dll
    Hello.exe
`
	assert.Equal(t, want, buf.String())
}

func TestWriter_IndentParameter(t *testing.T) {
	var buf bytes.Buffer
	params := generate.Parameters{"indent": "\t"}
	require.NoError(t, generate.WriteSolution(context.Background(), New(), &buf, writeSample(t), params, nil))

	assert.Contains(t, buf.String(), "\n\tsources of Lib\n\t\tLib.cs\n")
}

func TestWriter_Registered(t *testing.T) {
	w, err := generate.New("outline")
	require.NoError(t, err)
	assert.IsType(t, &Writer{}, w)
}

func TestWriter_NoOutput(t *testing.T) {
	err := generate.WriteSolution(context.Background(), New(), nil, writeSample(t), nil, nil)
	assert.EqualError(t, err, "outline: no output configured")
}
