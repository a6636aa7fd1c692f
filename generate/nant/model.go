package nant

import "encoding/xml"

// buildFile is the root <project> element of a NAnt build file.
type buildFile struct {
	XMLName    xml.Name   `xml:"project"`
	Name       string     `xml:"name,attr"`
	Default    string     `xml:"default,attr"`
	BaseDir    string     `xml:"basedir,attr"`
	Comment    string     `xml:",comment"`
	Properties []property `xml:"property"`
	FileSets   []fileSet  `xml:"fileset"`
	Targets    []*target  `xml:"target"`
}

type property struct {
	Name      string `xml:"name,attr"`
	Value     string `xml:"value,attr"`
	Overwrite string `xml:"overwrite,attr,omitempty"`
}

type include struct {
	Name string `xml:"name,attr"`
}

// fileSet is rendered under whatever element name the enclosing field gives it.
type fileSet struct {
	ID       string    `xml:"id,attr,omitempty"`
	BaseDir  string    `xml:"basedir,attr,omitempty"`
	Includes []include `xml:"include"`
}

func (fs *fileSet) add(name string) {
	for _, in := range fs.Includes {
		if in.Name == name {
			return
		}
	}
	fs.Includes = append(fs.Includes, include{Name: name})
}

type target struct {
	Name        string `xml:"name,attr"`
	Depends     string `xml:"depends,attr,omitempty"`
	Description string `xml:"description,attr,omitempty"`

	// Tasks holds task elements in execution order; each names itself through XMLName.
	Tasks []any
}

type mkdirTask struct {
	XMLName xml.Name `xml:"mkdir"`
	Dir     string   `xml:"dir,attr"`
}

type upToDateTask struct {
	XMLName     xml.Name `xml:"uptodate"`
	Property    string   `xml:"property,attr"`
	TargetFiles fileSet  `xml:"targetfiles"`
	SourceFiles fileSet  `xml:"sourcefiles"`
}

type resGenTask struct {
	XMLName xml.Name `xml:"resgen"`
	Input   string   `xml:"input,attr"`
	Output  string   `xml:"output,attr"`
	Unless  string   `xml:"unless,attr,omitempty"`
}

type arg struct {
	Value string `xml:"value,attr"`
}

// compileTask is <csc> or <vbc>, chosen through XMLName.
type compileTask struct {
	XMLName         xml.Name
	Target          string   `xml:"target,attr"`
	Output          string   `xml:"output,attr"`
	Debug           string   `xml:"debug,attr"`
	Optimize        string   `xml:"optimize,attr,omitempty"`
	Define          string   `xml:"define,attr,omitempty"`
	WarnLevel       string   `xml:"warnlevel,attr,omitempty"`
	Unsafe          string   `xml:"unsafe,attr,omitempty"`
	Checked         string   `xml:"checked,attr,omitempty"`
	RemoveIntChecks string   `xml:"removeintchecks,attr,omitempty"`
	Doc             string   `xml:"doc,attr,omitempty"`
	RootNamespace   string   `xml:"rootnamespace,attr,omitempty"`
	Unless          string   `xml:"unless,attr,omitempty"`
	Sources         fileSet  `xml:"sources"`
	References      *fileSet `xml:"references"`
	Resources       *fileSet `xml:"resources"`
	Args            []arg    `xml:"arg"`
}

type copyTask struct {
	XMLName xml.Name `xml:"copy"`
	ToDir   string   `xml:"todir,attr"`
	Flatten string   `xml:"flatten,attr,omitempty"`
	FileSet fileSet  `xml:"fileset"`
}

type deleteTask struct {
	XMLName     xml.Name `xml:"delete"`
	File        string   `xml:"file,attr,omitempty"`
	FailOnError string   `xml:"failonerror,attr"`
}
