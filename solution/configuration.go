package solution

import (
	"strconv"
	"strings"
)

// Configuration is one named build configuration of a project.
type Configuration struct {
	Name                      string
	OutputPath                string
	DocumentationFile         string
	DebugSymbols              bool
	WarningLevel              int
	AllowUnsafeBlocks         bool
	CheckForOverflowUnderflow bool
	Optimize                  bool

	// DefineConstants is the composed preprocessor define list
	DefineConstants string
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func newConfiguration(t Type, el configElement) *Configuration {
	c := &Configuration{
		Name:              el.Name,
		OutputPath:        NormalizePath(el.OutputPath),
		DocumentationFile: NormalizePath(el.DocumentationFile),
		DebugSymbols:      parseBool(el.DebugSymbols),
		WarningLevel:      parseInt(el.WarningLevel),
		Optimize:          parseBool(el.Optimize),
		DefineConstants:   el.DefineConstants,
	}

	if t.IsVB() {
		// vbc has no unsafe code; integer checks are expressed inversely
		c.CheckForOverflowUnderflow = !parseBool(el.RemoveIntegerChecks)

		defines := make([]string, 0, 3)
		if el.DefineConstants != "" {
			defines = append(defines, el.DefineConstants)
		}
		defines = append(defines,
			"TRACE="+boolFlag(parseBool(el.DefineTrace)),
			"DEBUG="+boolFlag(parseBool(el.DefineDebug)))
		c.DefineConstants = strings.Join(defines, ",")
		return c
	}

	c.AllowUnsafeBlocks = parseBool(el.AllowUnsafeBlocks)
	c.CheckForOverflowUnderflow = parseBool(el.CheckForOverflowUnderflow)
	return c
}

func newVCConfiguration(el vcConfiguration) *Configuration {
	name := el.Name
	// "Debug|Win32" names the platform too
	if i := strings.Index(name, "|"); i >= 0 {
		name = name[:i]
	}
	return &Configuration{
		Name:       name,
		OutputPath: NormalizePath(el.OutputDirectory),
	}
}

// Defines splits DefineConstants into individual symbols.
func (c *Configuration) Defines() []string {
	fields := strings.FieldsFunc(c.DefineConstants, func(r rune) bool {
		return r == ';' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
