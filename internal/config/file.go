package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk project configuration. Empty fields leave the
// corresponding option untouched.
type File struct {
	Path          string `yaml:"path,omitempty"`
	Bin           string `yaml:"bin,omitempty"`
	OutputPath    string `yaml:"output_path,omitempty"`
	ContainerName string `yaml:"container_name,omitempty"`
	EnvFile       string `yaml:"env_file,omitempty"`
	Volume        string `yaml:"volume,omitempty"`
	Recipe        string `yaml:"recipe,omitempty"`
}

// Load reads the project file at path. A missing file yields an empty File.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfig, path, err)
	}
	return &f, nil
}

// Save writes the project file to path, refusing to replace an existing one.
func Save(path string, f *File) error {
	if Exists(path) {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Exists returns true if the project file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Apply copies the file's values into opts for every field the caller did
// not set explicitly. explicit reports whether a field came from a flag.
func (f *File) Apply(opts *Options, explicit func(field string) bool) {
	set := func(field, value string, dst *string) {
		if value == "" || explicit(field) {
			return
		}
		*dst = value
	}
	set("path", f.Path, &opts.Path)
	set("bin", f.Bin, &opts.Bin)
	set("output-path", f.OutputPath, &opts.OutputPath)
	set("container-name", f.ContainerName, &opts.ContainerName)
	set("env-file", f.EnvFile, &opts.EnvFile)
	set("volume", f.Volume, &opts.Volume)
	if f.Recipe != "" {
		opts.Recipe = f.Recipe
	}
}
