package project

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the per-project configuration file.
const ManifestName = "rlint.toml"

// Config is the decoded rlint.toml. All fields live under [lint]; an empty
// file is valid and means defaults everywhere.
type Config struct {
	Lint LintConfig `toml:"lint"`
}

type LintConfig struct {
	// Select limits checking to the named rules; empty means every rule.
	Select []string `toml:"select"`
	// Ignore disables the named rules after Select is applied.
	Ignore []string `toml:"ignore"`
	// UnsafeFixes opts the fix command into behavior-changing fixes.
	UnsafeFixes bool `toml:"unsafe-fixes"`
	// Globals extends the built-in base-name set for undefined_variable.
	Globals []string `toml:"globals"`
	// Exclude lists path globs (relative to the config's directory) that
	// directory walks skip.
	Exclude []string `toml:"exclude"`

	AssignmentOp  AssignmentOpConfig  `toml:"assignment-op"`
	UnusedBinding UnusedBindingConfig `toml:"unused-binding"`
}

type AssignmentOpConfig struct {
	// Style is "arrow" (prefer <-) or "equals" (prefer =).
	Style string `toml:"style"`
}

type UnusedBindingConfig struct {
	// Exclude lists binding names never reported as unused.
	Exclude []string `toml:"exclude"`
}

// Default returns the configuration used when no rlint.toml exists.
func Default() Config {
	return Config{
		Lint: LintConfig{
			AssignmentOp: AssignmentOpConfig{Style: "arrow"},
		},
	}
}

// Load decodes one rlint.toml and validates it.
func Load(path string, knownRules []string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(path, knownRules); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate(path string, knownRules []string) error {
	known := make(map[string]struct{}, len(knownRules))
	for _, name := range knownRules {
		known[name] = struct{}{}
	}
	for _, list := range [][]string{c.Lint.Select, c.Lint.Ignore} {
		for _, name := range list {
			if _, ok := known[name]; !ok {
				return fmt.Errorf("%s: unknown rule %q (known: %s)",
					path, name, strings.Join(knownRules, ", "))
			}
		}
	}
	switch c.Lint.AssignmentOp.Style {
	case "", "arrow", "equals":
	default:
		return fmt.Errorf("%s: [lint.assignment-op].style must be \"arrow\" or \"equals\", got %q",
			path, c.Lint.AssignmentOp.Style)
	}
	return nil
}

// Enabled resolves Select and Ignore against the known rule names into the
// enabled set the checker consumes. nil means every rule.
func (c Config) Enabled(knownRules []string) map[string]bool {
	if len(c.Lint.Select) == 0 && len(c.Lint.Ignore) == 0 {
		return nil
	}
	enabled := make(map[string]bool, len(knownRules))
	if len(c.Lint.Select) == 0 {
		for _, name := range knownRules {
			enabled[name] = true
		}
	} else {
		for _, name := range c.Lint.Select {
			enabled[name] = true
		}
	}
	for _, name := range c.Lint.Ignore {
		delete(enabled, name)
	}
	return enabled
}

// Fingerprint returns a stable digest of the effective configuration, used
// as part of the result cache key: a config change must invalidate cached
// file results even when file contents did not move.
func (c Config) Fingerprint() Digest {
	var sb strings.Builder
	writeList := func(tag string, items []string) {
		sorted := append([]string(nil), items...)
		sort.Strings(sorted)
		sb.WriteString(tag)
		sb.WriteByte('=')
		sb.WriteString(strings.Join(sorted, ","))
		sb.WriteByte('\n')
	}
	writeList("select", c.Lint.Select)
	writeList("ignore", c.Lint.Ignore)
	writeList("globals", c.Lint.Globals)
	writeList("exclude", c.Lint.Exclude)
	writeList("unused-exclude", c.Lint.UnusedBinding.Exclude)
	fmt.Fprintf(&sb, "unsafe-fixes=%v\n", c.Lint.UnsafeFixes)
	fmt.Fprintf(&sb, "assignment-style=%s\n", c.Lint.AssignmentOp.Style)
	return HashBytes([]byte(sb.String()))
}
