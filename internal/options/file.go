package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML document form of Options.
//
//	fields:
//	  name: asc
//	  createdAt: desc
//	defaultSort: [[createdAt, desc]]
//	toggleReset: true
//	append: previous
type File struct {
	Fields      map[string]FieldConfig `yaml:"fields"`
	DefaultSort yaml.Node              `yaml:"defaultSort,omitempty"`
	ToggleReset *bool                  `yaml:"toggleReset,omitempty"`
	Append      AppendMode             `yaml:"append,omitempty"`
}

// Options converts f to Options. An absent defaultSort stays unset.
func (f File) Options() Options {
	o := Options{
		Fields:      f.Fields,
		ToggleReset: f.ToggleReset,
		Append:      f.Append,
	}
	if f.DefaultSort.Kind != 0 {
		node := f.DefaultSort
		o.DefaultSort = &node
	}
	return o
}

// Load reads and parses an options file.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML (or JSON) options. Unknown keys are rejected.
// The result is not validated; call Resolve.
func Parse(data []byte) (Options, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Options{}, ValidationErrors{{Field: "fields", Message: "fields is required"}}
		}
		return Options{}, ValidationErrors{{Field: "options", Message: err.Error()}}
	}
	return f.Options(), nil
}
