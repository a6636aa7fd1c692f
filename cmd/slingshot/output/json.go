package output

import (
	"encoding/json"
	"io"
	"time"
)

// CurrentSchemaVersion is the schema version for all JSON outputs
const CurrentSchemaVersion = "1.0.0"

// FormatsOutput represents the JSON output for the formats command
type FormatsOutput struct {
	SchemaVersion string       `json:"schemaVersion"`
	Formats       []FormatInfo `json:"formats"`
}

// FormatInfo describes one registered writer
type FormatInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// InspectOutput represents the JSON output for the inspect command
type InspectOutput struct {
	SchemaVersion  string        `json:"schemaVersion"`
	Solution       string        `json:"solution"`
	FormatVersion  string        `json:"formatVersion"`
	Configurations []string      `json:"configurations"`
	Projects       []ProjectInfo `json:"projects"`
	ElapsedMs      int64         `json:"elapsedMs"`
}

// ProjectInfo represents one registered project in JSON output
type ProjectInfo struct {
	Name           string   `json:"name"`
	GUID           string   `json:"guid"`
	Type           string   `json:"type"`
	Path           string   `json:"path"`
	AssemblyName   string   `json:"assemblyName,omitempty"`
	OutputFile     string   `json:"outputFile,omitempty"`
	SourceFiles    int      `json:"sourceFiles"`
	Dependencies   []string `json:"dependencies"`
	ProjectRefs    []string `json:"projectReferences"`
	References     []string `json:"references"`
	Configurations []string `json:"configurations"`
}

// WriteJSON writes a JSON object to the specified writer (typically stdout)
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// MeasureElapsed returns elapsed time in milliseconds since start
func MeasureElapsed(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
