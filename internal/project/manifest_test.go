package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sable.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestFeatures(t *testing.T) {
	path := writeManifest(t, `
[package]
name = "demo"
version = "0.1.0"

[features]
implicit_regions = true
placement = true
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Package.Name != "demo" || m.Package.Version != "0.1.0" {
		t.Fatalf("package = %+v", m.Package)
	}
	if !m.Features.ImplicitRegions || !m.Features.Placement {
		t.Fatalf("features = %+v, want both enabled", m.Features)
	}
}

func TestLoadManifestDefaultsFeaturesOff(t *testing.T) {
	path := writeManifest(t, `
[package]
name = "demo"
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Features.ImplicitRegions || m.Features.Placement {
		t.Fatalf("features = %+v, want all disabled", m.Features)
	}
}

func TestLoadManifestMissingPackage(t *testing.T) {
	path := writeManifest(t, `
[features]
placement = true
`)
	_, err := LoadManifest(path)
	if !errors.Is(err, ErrPackageSectionMissing) {
		t.Fatalf("err = %v, want ErrPackageSectionMissing", err)
	}
}

func TestLoadManifestMissingName(t *testing.T) {
	path := writeManifest(t, `
[package]
version = "1.0.0"
`)
	_, err := LoadManifest(path)
	if !errors.Is(err, ErrPackageNameMissing) {
		t.Fatalf("err = %v, want ErrPackageNameMissing", err)
	}
}

func TestLoadManifestUnknownFeature(t *testing.T) {
	path := writeManifest(t, `
[package]
name = "demo"

[features]
warp_drive = true
`)
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("unknown feature accepted")
	}
}

func TestFindSableTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "sable.toml"), []byte("[package]\nname = \"demo\"\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindSableToml(nested)
	if err != nil || !ok {
		t.Fatalf("FindSableToml: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %s, want under %s", path, root)
	}
}
