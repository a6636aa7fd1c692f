package solution

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"golang.org/x/net/html/charset"
)

// vsProjectDocument is the root <VisualStudioProject> element shared by
// .csproj, .vbproj and .vcproj files.
type vsProjectDocument struct {
	XMLName xml.Name `xml:"VisualStudioProject"`

	// Visual C++ projects carry their metadata on the root element
	ProjectType    string            `xml:"ProjectType,attr"`
	Name           string            `xml:"Name,attr"`
	ProjectGUID    string            `xml:"ProjectGUID,attr"`
	RootNamespace  string            `xml:"RootNamespace,attr"`
	Configurations []vcConfiguration `xml:"Configurations>Configuration"`
	Files          vcFilter          `xml:"Files"`

	CSharp      *managedElement `xml:"CSHARP"`
	VisualBasic *managedElement `xml:"VisualBasic"`
}

// managedElement is the <CSHARP> or <VisualBasic> element of a managed project.
type managedElement struct {
	ProjectType    string             `xml:"ProjectType,attr"`
	ProductVersion string             `xml:"ProductVersion,attr"`
	SchemaVersion  string             `xml:"SchemaVersion,attr"`
	ProjectGUID    string             `xml:"ProjectGuid,attr"`
	Settings       settingsElement    `xml:"Build>Settings"`
	References     []referenceElement `xml:"Build>References>Reference"`
	Files          []fileElement      `xml:"Files>Include>File"`
}

type settingsElement struct {
	AssemblyName              string          `xml:"AssemblyName,attr"`
	OutputType                string          `xml:"OutputType,attr"`
	RootNamespace             string          `xml:"RootNamespace,attr"`
	ApplicationIcon           string          `xml:"ApplicationIcon,attr"`
	AssemblyOriginatorKeyFile string          `xml:"AssemblyOriginatorKeyFile,attr"`
	StartupObject             string          `xml:"StartupObject,attr"`
	Configs                   []configElement `xml:"Config"`
}

type configElement struct {
	Name                      string `xml:"Name,attr"`
	OutputPath                string `xml:"OutputPath,attr"`
	DocumentationFile         string `xml:"DocumentationFile,attr"`
	DebugSymbols              string `xml:"DebugSymbols,attr"`
	WarningLevel              string `xml:"WarningLevel,attr"`
	AllowUnsafeBlocks         string `xml:"AllowUnsafeBlocks,attr"`
	CheckForOverflowUnderflow string `xml:"CheckForOverflowUnderflow,attr"`
	RemoveIntegerChecks       string `xml:"RemoveIntegerChecks,attr"`
	DefineConstants           string `xml:"DefineConstants,attr"`
	DefineDebug               string `xml:"DefineDebug,attr"`
	DefineTrace               string `xml:"DefineTrace,attr"`
	Optimize                  string `xml:"Optimize,attr"`
}

type referenceElement struct {
	Name         string `xml:"Name,attr"`
	AssemblyName string `xml:"AssemblyName,attr"`
	Project      string `xml:"Project,attr"`
	GUID         string `xml:"Guid,attr"`
	HintPath     string `xml:"HintPath,attr"`
	Private      string `xml:"Private,attr"`
	WrapperTool  string `xml:"WrapperTool,attr"`
}

type fileElement struct {
	RelPath     string `xml:"RelPath,attr"`
	BuildAction string `xml:"BuildAction,attr"`
	SubType     string `xml:"SubType,attr"`
	Link        string `xml:"Link,attr"`
}

type vcConfiguration struct {
	Name            string `xml:"Name,attr"`
	OutputDirectory string `xml:"OutputDirectory,attr"`
}

// vcFilter is a (possibly nested) group of C++ files; the root <Files> element shares the shape.
type vcFilter struct {
	Name    string     `xml:"Name,attr"`
	Files   []vcFile   `xml:"File"`
	Filters []vcFilter `xml:"Filter"`
}

type vcFile struct {
	RelativePath string `xml:"RelativePath,attr"`
}

// collect appends every file under f, depth first, in document order.
func (f *vcFilter) collect(out []vcFile) []vcFile {
	out = append(out, f.Files...)
	for i := range f.Filters {
		out = f.Filters[i].collect(out)
	}
	return out
}

// etpDocument is the root of an enterprise template (.etp) container.
type etpDocument struct {
	XMLName xml.Name   `xml:"EFPROJECT"`
	General etpGeneral `xml:"GENERAL"`
}

type etpGeneral struct {
	Banner  string `xml:"BANNER"`
	Version string `xml:"VERSION"`

	// Producers disagree on the casing of the references section
	References      []etpReference `xml:"References>Reference"`
	UpperReferences []etpReference `xml:"REFERENCES>REFERENCE"`

	Files []string `xml:"Views>ProjectExplorer>File"`
}

type etpReference struct {
	File string `xml:"FILE"`
	GUID string `xml:"GUIDPROJECTID"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeXML unmarshals an XML document that may carry a BOM or a legacy encoding declaration.
func decodeXML(data []byte, v any) error {
	data = bytes.TrimPrefix(data, utf8BOM)

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to parse XML: %w", err)
	}
	return nil
}
