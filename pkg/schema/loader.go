package schema

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// definition mirrors the YAML document layout. Kinds stay raw strings here so
// parse failures can carry the offending tag.
type definition struct {
	Name   string      `yaml:"name"`
	Fields []*fieldDef `yaml:"fields"`
}

type fieldDef struct {
	Name        string      `yaml:"name"`
	Kind        string      `yaml:"kind"`
	Required    bool        `yaml:"required"`
	VerboseName string      `yaml:"verbose_name"`
	HelpText    string      `yaml:"help_text"`
	Default     any         `yaml:"default"`
	Choices     []Choice    `yaml:"choices"`
	MinLength   int         `yaml:"min_length"`
	MaxLength   int         `yaml:"max_length"`
	MinValue    *float64    `yaml:"min_value"`
	MaxValue    *float64    `yaml:"max_value"`
	Precision   int         `yaml:"precision"`
	Pattern     string      `yaml:"pattern"`
	Widget      string      `yaml:"widget"`
	Ref         string      `yaml:"ref"`
	Elem        *fieldDef   `yaml:"elem"`
	Embedded    *definition `yaml:"embedded"`
}

// Load parses a YAML schema definition.
func Load(raw []byte) (*Schema, error) {
	var def definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("schema: parse definition: %w", err)
	}
	return buildSchema(&def)
}

// LoadFile reads and parses a schema definition from disk.
func LoadFile(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Load(raw)
}

// LoadFS reads and parses a schema definition from an fs.FS, typically an
// embedded bundle.
func LoadFS(fsys fs.FS, path string) (*Schema, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Load(raw)
}

func buildSchema(def *definition) (*Schema, error) {
	fields := make([]*Field, 0, len(def.Fields))
	for _, fd := range def.Fields {
		field, err := buildField(fd)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return New(def.Name, fields...)
}

func buildField(fd *fieldDef) (*Field, error) {
	if fd == nil {
		return nil, fmt.Errorf("schema: empty field definition")
	}
	kind, err := ParseKind(fd.Kind)
	if err != nil {
		return nil, fmt.Errorf("schema: field %q: %w", fd.Name, err)
	}
	field := &Field{
		Name:        fd.Name,
		Kind:        kind,
		Required:    fd.Required,
		VerboseName: fd.VerboseName,
		HelpText:    fd.HelpText,
		Default:     fd.Default,
		Choices:     fd.Choices,
		MinLength:   fd.MinLength,
		MaxLength:   fd.MaxLength,
		MinValue:    fd.MinValue,
		MaxValue:    fd.MaxValue,
		Precision:   fd.Precision,
		Pattern:     fd.Pattern,
		Widget:      fd.Widget,
		Ref:         fd.Ref,
	}
	if fd.Elem != nil {
		elem, err := buildField(fd.Elem)
		if err != nil {
			return nil, err
		}
		field.Elem = elem
	}
	if fd.Embedded != nil {
		embedded, err := buildSchema(fd.Embedded)
		if err != nil {
			return nil, err
		}
		field.Embedded = embedded
	}
	return field, nil
}
