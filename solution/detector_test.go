package solution

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_DetectSolution(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "Sample.sln", slnHeader+"\n")
		writeFile(t, dir, "nested/Other.sln", slnHeader+"\n")

		result, err := NewDetector(dir).DetectSolution()
		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.False(t, result.Ambiguous)
		assert.Equal(t, path, result.SolutionPath)
	})

	t.Run("recursive is ambiguous", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Sample.sln", slnHeader+"\n")
		writeFile(t, dir, "nested/Other.SLN", slnHeader+"\n")
		writeFile(t, dir, "bin/Copy.sln", slnHeader+"\n")

		d := NewDetector(dir)
		d.Recursive = true
		result, err := d.DetectSolution()
		require.NoError(t, err)
		assert.True(t, result.Ambiguous)
		assert.Len(t, result.FoundFiles, 2)
		assert.Empty(t, result.SolutionPath)
	})

	t.Run("none", func(t *testing.T) {
		result, err := NewDetector(t.TempDir()).DetectSolution()
		require.NoError(t, err)
		assert.False(t, result.Found)
	})
}

func TestValidateSolutionFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Sample.sln", slnHeader+"\n")

	assert.NoError(t, ValidateSolutionFile(path))
	assert.Error(t, ValidateSolutionFile(filepath.Join(dir, "Missing.sln")))
	assert.Error(t, ValidateSolutionFile(filepath.Join(dir, "Sample.slnx")))
	assert.True(t, IsSolutionFile("a/B.SLN"))
	assert.False(t, IsSolutionFile(""))
}
