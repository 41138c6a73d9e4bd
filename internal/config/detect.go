package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Bin []struct {
		Name string `toml:"name"`
	} `toml:"bin"`
}

// Detection is what Detect could infer about a project directory.
type Detection struct {
	Bin       string
	Manifest  string
	Workspace bool
}

// Detect reads projectDir/Cargo.toml and picks the binary to build: the first
// [[bin]] target if any, otherwise the package name.
func Detect(projectDir string) (Detection, error) {
	manifest := filepath.Join(projectDir, "Cargo.toml")
	data, err := os.ReadFile(manifest)
	if err != nil {
		if os.IsNotExist(err) {
			return Detection{}, fmt.Errorf("%w in %s", ErrNoManifest, projectDir)
		}
		return Detection{}, fmt.Errorf("reading %s: %w", manifest, err)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Detection{}, fmt.Errorf("parsing %s: %w", manifest, err)
	}

	det := Detection{Manifest: manifest, Bin: m.Package.Name}
	for _, b := range m.Bin {
		if b.Name != "" {
			det.Bin = b.Name
			break
		}
	}
	// A virtual workspace manifest has no [package] and names no binary.
	if det.Bin == "" {
		det.Workspace = true
	}
	return det, nil
}
