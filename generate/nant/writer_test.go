package nant

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/slingshot/generate"
	"github.com/willibrandon/slingshot/solution"
)

const coreProject = `<VisualStudioProject>
  <CSHARP ProjectType="Local" ProductVersion="7.10.3077" SchemaVersion="2.0">
    <Build>
      <Settings AssemblyName="Core" OutputType="Library" RootNamespace="Acme.Core">
        <Config Name="Debug" OutputPath="bin\Debug\" DefineConstants="DEBUG;TRACE" DebugSymbols="true" WarningLevel="4" AllowUnsafeBlocks="true" DocumentationFile="Core.xml"/>
        <Config Name="Release" OutputPath="bin\Release\" DefineConstants="TRACE" DebugSymbols="false" Optimize="true" WarningLevel="4"/>
      </Settings>
      <References>
        <Reference Name="System" AssemblyName="System"/>
        <Reference Name="log4net" AssemblyName="log4net" HintPath="..\lib\log4net.dll" Private="True"/>
      </References>
    </Build>
    <Files>
      <Include>
        <File RelPath="Widget.cs" SubType="Code" BuildAction="Compile"/>
        <File RelPath="Form1.resx" BuildAction="EmbeddedResource"/>
        <File RelPath="Images\logo.bmp" BuildAction="EmbeddedResource"/>
      </Include>
    </Files>
  </CSHARP>
</VisualStudioProject>
`

const appProject = `<VisualStudioProject>
  <VisualBasic ProjectType="Local" ProductVersion="7.10.3077" SchemaVersion="2.0">
    <Build>
      <Settings AssemblyName="App" OutputType="WinExe" RootNamespace="App">
        <Config Name="Debug" OutputPath="bin\" DefineConstants="" DefineDebug="true" DefineTrace="true" RemoveIntegerChecks="true"/>
      </Settings>
      <References>
        <Reference Name="Core" Project="{11111111-1111-1111-1111-111111111111}" Package="{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"/>
      </References>
    </Build>
    <Files>
      <Include>
        <File RelPath="Main.vb" SubType="Code" BuildAction="Compile"/>
      </Include>
    </Files>
  </VisualBasic>
</VisualStudioProject>
`

const nativeProject = `<?xml version="1.0" encoding="Windows-1252"?>
<VisualStudioProject ProjectType="Visual C++" Version="7.10" Name="Native" ProjectGUID="{44444444-4444-4444-4444-444444444444}">
  <Configurations>
    <Configuration Name="Debug|Win32" OutputDirectory="Debug"/>
  </Configurations>
  <Files>
    <Filter Name="Source Files">
      <File RelativePath=".\native.cpp"/>
    </Filter>
  </Files>
</VisualStudioProject>
`

const manifest = "Microsoft Visual Studio Solution File, Format Version 8.00\n" +
	`Project("{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}") = "Core", "Core\Core.csproj", "{11111111-1111-1111-1111-111111111111}"` + "\nEndProject\n" +
	`Project("{F184B08F-C81C-45F6-A57F-5ABD9991F28F}") = "App", "App\App.vbproj", "{22222222-2222-2222-2222-222222222222}"` + "\nEndProject\n" +
	`Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "Native", "Native\Native.vcproj", "{44444444-4444-4444-4444-444444444444}"` + "\nEndProject\n" +
	"Global\n" +
	"\tGlobalSection(ProjectDependencies) = postSolution\n" +
	"\t\t{22222222-2222-2222-2222-222222222222}.0 = {11111111-1111-1111-1111-111111111111}\n" +
	"\tEndGlobalSection\n" +
	"EndGlobal\n"

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Sample.sln":           manifest,
		"Core/Core.csproj":     coreProject,
		"Core/Form1.resx":      "<root/>",
		"App/App.vbproj":       appProject,
		"Native/Native.vcproj": nativeProject,
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return filepath.Join(dir, "Sample.sln")
}

func render(t *testing.T, params generate.Parameters) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, generate.WriteSolution(context.Background(), New(), &buf, writeSample(t), params, nil))
	return buf.String()
}

type parsedTarget struct {
	Name    string `xml:"name,attr"`
	Depends string `xml:"depends,attr"`
}

func parseTargets(t *testing.T, out string) map[string]parsedTarget {
	t.Helper()
	var doc struct {
		Name    string         `xml:"name,attr"`
		Targets []parsedTarget `xml:"target"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &doc), "output is well-formed XML")
	assert.Equal(t, "Sample", doc.Name)

	targets := make(map[string]parsedTarget)
	var order []string
	for _, tg := range doc.Targets {
		targets[tg.Name] = tg
		order = append(order, tg.Name)
	}
	assert.Equal(t, []string{"init", "build", "Core", "App", "clean"}, order)
	return targets
}

func TestWriter_BuildFile(t *testing.T) {
	out := render(t, nil)
	targets := parseTargets(t, out)

	// the Visual C++ project is not part of the solution graph
	assert.Equal(t, "Core,App", targets["build"].Depends)
	assert.NotContains(t, targets, "Native")
	assert.NotContains(t, out, "Native")
	assert.Equal(t, "init", targets["Core"].Depends)
	assert.Equal(t, "init,Core", targets["App"].Depends, "manifest edge and project reference collapse")

	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<!-- Generated by slingshot from Sample.sln -->`)
	assert.Contains(t, out, `<property name="config" value="Debug" overwrite="false"></property>`)
	assert.Contains(t, out, `<property name="build.dir" value="build" overwrite="false"></property>`)

	t.Run("project file sets", func(t *testing.T) {
		assert.Contains(t, out, `<fileset id="Core.sources" basedir="Core">`)
		assert.Contains(t, out, `<fileset id="Core.resx" basedir="Core">`)
		assert.Contains(t, out, `<fileset id="Core.resources" basedir="Core">`)
		assert.Contains(t, out, `<include name="Images/logo.bmp"></include>`)
	})

	t.Run("csharp project", func(t *testing.T) {
		assert.Contains(t, out, `<uptodate property="Core.uptodate">`)
		assert.Contains(t, out, `<resgen input="Core/Form1.resx" output="${build.dir}/Acme.Core.Form1.resources" unless="${Core.uptodate}"></resgen>`)
		assert.Contains(t, out, `<csc target="library" output="${build.dir}/Core.dll" debug="true" define="DEBUG;TRACE" warnlevel="4" unsafe="true" doc="${build.dir}/Core.xml" unless="${Core.uptodate}">`)
		assert.Contains(t, out, `<include name="System.dll"></include>`)
		assert.Contains(t, out, `<include name="${build.dir}/log4net.dll"></include>`)
		assert.Contains(t, out, `<include name="${build.dir}/Acme.Core.Form1.resources"></include>`)
		assert.Contains(t, out, `<arg value="/resource:Core/Images/logo.bmp,Acme.Core.Images.logo.bmp"></arg>`)
	})

	t.Run("vb project", func(t *testing.T) {
		assert.Contains(t, out, `<vbc target="winexe" output="${build.dir}/App.exe" debug="false" define="TRACE=1,DEBUG=1" removeintchecks="true" rootnamespace="App" unless="${App.uptodate}">`)
		assert.Contains(t, out, `<include name="${build.dir}/Core.dll"></include>`)
		assert.Contains(t, out, `<copy todir="App/bin" flatten="true">`)
		assert.Contains(t, out, `<fileset basedir="${build.dir}">`)
	})

	t.Run("clean", func(t *testing.T) {
		assert.Contains(t, out, `<delete file="${build.dir}/Core.dll" failonerror="false"></delete>`)
		assert.Contains(t, out, `<delete file="${build.dir}/Acme.Core.Form1.resources" failonerror="false"></delete>`)
		assert.Contains(t, out, `<delete file="${build.dir}/App.exe" failonerror="false"></delete>`)
	})
}

func TestWriter_Parameters(t *testing.T) {
	out := render(t, generate.Parameters{"config": "Release", "build.dir": "out", "default": "clean"})

	assert.Contains(t, out, `<project name="Sample" default="clean" basedir=".">`)
	assert.Contains(t, out, `<property name="config" value="Release" overwrite="false"></property>`)
	assert.Contains(t, out, `<property name="build.dir" value="out" overwrite="false"></property>`)
	assert.Contains(t, out, `<csc target="library" output="${build.dir}/Core.dll" debug="false" optimize="true" define="TRACE" warnlevel="4" unless="${Core.uptodate}">`)

	// App has no Release configuration and falls back to its first one
	assert.Contains(t, out, `define="TRACE=1,DEBUG=1"`)
	assert.NotContains(t, out, "<cl ")
}

func TestWriter_Registered(t *testing.T) {
	w, err := generate.New("NAnt")
	require.NoError(t, err)
	assert.IsType(t, &Writer{}, w)
}

func TestWriter_CallbacksOutsideProject(t *testing.T) {
	w := New()
	p := solution.NewProject(nil, "{11111111-1111-1111-1111-111111111111}", "Core", "Core.csproj")

	assert.ErrorIs(t, w.ProjectDependency(p), errNoProject)
	assert.ErrorIs(t, w.StartAssembly(), errNoProject)
	assert.Error(t, w.EndSolution())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_OutputError(t *testing.T) {
	err := generate.WriteSolution(context.Background(), New(), failingWriter{}, writeSample(t), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
