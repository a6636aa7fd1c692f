package solution

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Detector finds a solution manifest when none is named explicitly
type Detector struct {
	// SearchDir is the directory to search for solution files
	SearchDir string

	// Recursive also searches subdirectories, skipping hidden and build output directories
	Recursive bool
}

// NewDetector creates a detector for searchDir, defaulting to the working directory
func NewDetector(searchDir string) *Detector {
	if searchDir == "" {
		searchDir = "."
	}
	return &Detector{SearchDir: searchDir}
}

// IsSolutionFile checks if a file path has the solution manifest extension
func IsSolutionFile(path string) bool {
	return path != "" && strings.EqualFold(filepath.Ext(path), ".sln")
}

// DetectionResult contains the result of solution file detection
type DetectionResult struct {
	// Found indicates if any solution file was found
	Found bool

	// Ambiguous indicates if multiple solution files were found
	Ambiguous bool

	// SolutionPath is the path to the single solution file found
	SolutionPath string

	// FoundFiles lists all solution files found
	FoundFiles []string
}

// DetectSolution searches for solution files in the configured directory
func (d *Detector) DetectSolution() (*DetectionResult, error) {
	result := &DetectionResult{
		FoundFiles: []string{},
	}

	err := filepath.WalkDir(d.SearchDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path == d.SearchDir {
				return nil
			}
			name := entry.Name()
			if !d.Recursive || strings.HasPrefix(name, ".") || name == "bin" || name == "obj" {
				return filepath.SkipDir
			}
			return nil
		}

		if IsSolutionFile(path) {
			absPath, err := filepath.Abs(path)
			if err != nil {
				absPath = path
			}
			result.FoundFiles = append(result.FoundFiles, absPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error searching for solution files: %w", err)
	}

	switch len(result.FoundFiles) {
	case 0:
	case 1:
		result.Found = true
		result.SolutionPath = result.FoundFiles[0]
	default:
		result.Found = true
		result.Ambiguous = true
	}
	return result, nil
}

// ValidateSolutionFile checks if a solution file exists and is readable
func ValidateSolutionFile(path string) error {
	if !IsSolutionFile(path) {
		return fmt.Errorf("not a solution file (must have .sln extension): %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("solution file not found: %s", path)
		}
		return fmt.Errorf("cannot access solution file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a solution file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read solution file: %w", err)
	}
	_ = file.Close()

	return nil
}
