package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	goargs "github.com/reoring/goargs"
)

// Format selects a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// JSON compiles a schema from its JSON form.
func JSON(data []byte) (*goargs.Schema, error) {
	var d Document
	if err := j.Unmarshal(data, &d); err != nil {
		return nil, decodeIssue(err)
	}
	return d.Schema()
}

// YAML compiles a schema from its YAML form.
func YAML(data []byte) (*goargs.Schema, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, decodeIssue(err)
	}
	return d.Schema()
}

// TOML compiles a schema from its TOML form.
func TOML(data []byte) (*goargs.Schema, error) {
	var d Document
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, decodeIssue(err)
	}
	return d.Schema()
}

// Decode compiles a schema from data in the given format.
func Decode(data []byte, f Format) (*goargs.Schema, error) {
	switch f {
	case FormatJSON:
		return JSON(data)
	case FormatYAML:
		return YAML(data)
	case FormatTOML:
		return TOML(data)
	}
	return nil, goargs.Issues{goargs.SchemaIssue("", "unsupported manifest format '"+string(f)+"'")}
}

// File reads and compiles a manifest, picking the format from the file
// extension (.json, .yaml, .yml, .toml).
func File(path string) (*goargs.Schema, error) {
	f, ok := FormatForPath(path)
	if !ok {
		return nil, goargs.Issues{goargs.SchemaIssue(filepath.Base(path), "unsupported manifest extension")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, f)
}

// FormatForPath maps a file extension to its Format.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

// Malformed input is a schema defect like any other; the caller sees Issues
// for every load failure short of I/O errors.
func decodeIssue(err error) error {
	return goargs.Issues{goargs.SchemaIssue("", err.Error())}
}
