// Package project loads the sable.toml manifest that configures a
// compilation run, most importantly the language feature gates the
// lowering pass consults.
package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Features are the language gates a manifest can switch on.
type Features struct {
	// ImplicitRegions lets free region names in signatures bind as
	// implicit region parameters instead of erroring upstream.
	ImplicitRegions bool `toml:"implicit_regions"`
	// Placement enables the `place <- value` expression form.
	Placement bool `toml:"placement"`
}

// Manifest is the parsed sable.toml.
type Manifest struct {
	Package  Package
	Features Features
}

// Package is the [package] section.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

type manifestFile struct {
	Package  Package  `toml:"package"`
	Features Features `toml:"features"`
}

// LoadManifest parses a sable.toml file.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !meta.IsDefined("package", "name") || name == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	for _, key := range meta.Undecoded() {
		if len(key) >= 2 && key[0] == "features" {
			return Manifest{}, fmt.Errorf("%s: unknown feature %q", path, key[1])
		}
	}
	return Manifest{
		Package: Package{
			Name:    name,
			Version: strings.TrimSpace(cfg.Package.Version),
		},
		Features: cfg.Features,
	}, nil
}
