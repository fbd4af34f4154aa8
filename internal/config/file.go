package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the optional defaults file. Every field is optional; flags set on
// the command line take precedence.
type File struct {
	Clean struct {
		Profile             string   `yaml:"profile"`
		Strict              *bool    `yaml:"strict"`
		IncludeVolumes      *bool    `yaml:"include_volumes"`
		IncludeGlobalCaches *bool    `yaml:"include_global_caches"`
		Only                []string `yaml:"only"`
		Skip                []string `yaml:"skip"`
	} `yaml:"clean"`

	Purge struct {
		// Names are extra directory names treated as reinstallable.
		Names []string `yaml:"names"`
		// Suffixes are extra relative path suffixes, e.g. "vendor/bundle".
		Suffixes []string `yaml:"suffixes"`
	} `yaml:"purge"`
}

// DefaultFilePath returns $XDG_CONFIG_HOME/devsweep/config.yaml, falling back
// to ~/.config.
func DefaultFilePath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "devsweep", "config.yaml")
}

// LoadFile reads the defaults file at path. A missing file yields an empty
// File. Unknown keys and malformed YAML are errors.
func LoadFile(path string) (*File, error) {
	f := &File{}
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if f.Clean.Profile != "" {
		if _, err := ParseProfile(f.Clean.Profile); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	return f, nil
}

// Apply copies file defaults into o. isSet reports whether the flag of the
// given name was set explicitly, in which case the file value is ignored.
func (f *File) Apply(o *Options, isSet func(flag string) bool) {
	c := f.Clean
	if c.Profile != "" && !isSet("profile") {
		if p, err := ParseProfile(c.Profile); err == nil {
			o.Profile = p
		}
	}
	if c.Strict != nil && !isSet("strict") && !isSet("no-strict") {
		o.Strict = *c.Strict
	}
	if c.IncludeVolumes != nil && !isSet("include-volumes") {
		o.IncludeVolumes = *c.IncludeVolumes
	}
	if c.IncludeGlobalCaches != nil && !isSet("include-global-caches") {
		o.IncludeGlobalCaches = *c.IncludeGlobalCaches
	}
	if len(c.Only) > 0 && !isSet("only") {
		o.Only = SplitList(c.Only)
	}
	if len(c.Skip) > 0 && !isSet("skip") {
		o.Skip = SplitList(c.Skip)
	}
}
