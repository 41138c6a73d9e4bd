// Package recipe renders the multi-stage container recipe used by the builder.
//
// The embedded template defines two targets: "builder", which compiles the
// binary against musl and packages it as /opt/app/bootstrap.zip, and
// "runner", which wraps the binary in a local function runtime. The template
// receives exactly two variables, "path" and "bin".
//
// The rendered recipe is written to a temporary file in the working directory
// so that it sits inside the build context the engine is given.
package recipe

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"
	"text/template"
)

//go:embed Dockerfile.tmpl
var defaultTemplate string

// Default returns the embedded recipe template source.
func Default() string {
	return defaultTemplate
}

// Data holds the template variables.
type Data struct {
	Path string
	Bin  string
}

func (d Data) vars() map[string]string {
	return map[string]string{
		"path": d.Path,
		"bin":  d.Bin,
	}
}

// Render expands src with data. An empty src selects the embedded template.
func Render(src string, data Data) (string, error) {
	if src == "" {
		src = defaultTemplate
	}
	tmpl, err := template.New("Dockerfile").Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: parsing: %v", ErrTemplate, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data.vars()); err != nil {
		return "", fmt.Errorf("%w: rendering: %v", ErrTemplate, err)
	}
	return buf.String(), nil
}

// File is a rendered recipe on disk. Close removes it; it is safe to call
// Close more than once and from more than one goroutine.
type File struct {
	path string
	once sync.Once
	err  error
}

// Write renders src with data into a new temporary file created in dir.
// An empty src selects the embedded template.
func Write(dir, src string, data Data) (*File, error) {
	content, err := Render(src, data)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, ".muslambda-*.Dockerfile")
	if err != nil {
		return nil, fmt.Errorf("%w: creating temp file: %v", ErrIO, err)
	}
	f := &File{path: tmp.Name()}

	if _, err := fmt.Fprintln(tmp, content); err != nil {
		tmp.Close()
		f.Close()
		return nil, fmt.Errorf("%w: writing %s: %v", ErrIO, f.path, err)
	}
	if err := tmp.Close(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: closing %s: %v", ErrIO, f.path, err)
	}
	return f, nil
}

// Load reads a user-supplied template file.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading template %s: %v", ErrIO, path, err)
	}
	return string(data), nil
}

// Path returns the location of the rendered recipe.
func (f *File) Path() string {
	return f.path
}

// Close deletes the rendered recipe from disk.
func (f *File) Close() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			f.err = fmt.Errorf("%w: removing %s: %v", ErrIO, f.path, err)
		}
	})
	return f.err
}
