package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindManifest walks up from startDir to locate the nearest rlint.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Manifest couples a loaded config with where it came from. Root anchors
// relative exclude globs and is what the VCS gate inspects.
type Manifest struct {
	Path   string // absolute path of rlint.toml, "" when defaulted
	Root   string // directory the config governs
	Config Config
}

// Discover finds and loads the project config for startDir. When no
// rlint.toml exists anywhere up the tree, the defaults apply and Root is
// startDir itself.
func Discover(startDir string, knownRules []string) (Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Manifest{}, err
	}
	if !ok {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return Manifest{}, fmt.Errorf("failed to resolve start directory: %w", err)
		}
		return Manifest{Root: root, Config: Default()}, nil
	}
	cfg, err := Load(path, knownRules)
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Excluded reports whether rel (slash-separated, relative to Root) matches
// one of the config's exclude globs. A glob matches the path itself or any
// leading directory, so "testdata" excludes everything under it.
func (m Manifest) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range m.Config.Lint.Exclude {
		for probe := rel; probe != "." && probe != "/" && probe != ""; probe = pathDir(probe) {
			if ok, err := filepath.Match(pattern, probe); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func pathDir(p string) string {
	return filepath.ToSlash(filepath.Dir(p))
}
