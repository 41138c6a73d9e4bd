package recipe

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SubstitutesPathAndBin(t *testing.T) {
	out, err := Render("", Data{Path: "src", Bin: "handler"})
	require.NoError(t, err)

	assert.Contains(t, out, "src")
	assert.Contains(t, out, "handler")
	assert.NotContains(t, out, "{{")
}

func TestRender_DefinesBuilderAndRunnerTargets(t *testing.T) {
	out, err := Render("", Data{Path: ".", Bin: "handler"})
	require.NoError(t, err)

	assert.Contains(t, out, "AS builder")
	assert.Contains(t, out, "AS runner")
	assert.Contains(t, out, "/opt/app/bootstrap.zip")
}

func TestRender_CustomTemplate(t *testing.T) {
	out, err := Render("FROM scratch AS builder\n# {{ .path }}/{{ .bin }}\n", Data{Path: "a", Bin: "b"})
	require.NoError(t, err)
	assert.Equal(t, "FROM scratch AS builder\n# a/b\n", out)
}

func TestRender_TemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated action", "FROM {{ .bin "},
		{"unknown variable", "FROM {{ .image }}"},
		{"unknown function", "FROM {{ upper .bin }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.src, Data{Path: ".", Bin: "handler"})
			assert.ErrorIs(t, err, ErrTemplate)
		})
	}
}

func TestWrite_CreatesFileInDir(t *testing.T) {
	dir := t.TempDir()

	f, err := Write(dir, "", Data{Path: "src", Bin: "handler"})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, dir, filepath.Dir(f.Path()))

	data, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "src")
	assert.Contains(t, string(data), "handler")
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestWrite_TemplateErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Write(dir, "{{ .nope }}", Data{Bin: "handler"})
	require.ErrorIs(t, err, ErrTemplate)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite_MissingDir(t *testing.T) {
	_, err := Write(filepath.Join(t.TempDir(), "missing"), "", Data{Bin: "handler"})
	assert.ErrorIs(t, err, ErrIO)
}

func TestClose_RemovesFileOnce(t *testing.T) {
	f, err := Write(t.TempDir(), "", Data{Path: ".", Bin: "handler"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.Close())
		}()
	}
	wg.Wait()

	_, err = os.Stat(f.Path())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Dockerfile.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("FROM {{ .bin }}"), 0o644))

	src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FROM {{ .bin }}", src)

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrIO)
}
