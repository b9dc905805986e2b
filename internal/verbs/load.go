package verbs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tnwae/nuventure/internal/action"
	"github.com/tnwae/nuventure/internal/nverrors"
	"gopkg.in/yaml.v3"
)

// Load reads the verb table at path and binds it to handlers. The format is
// chosen by the file extension: ".json", ".toml", or ".yaml"/".yml".
func Load(path string, handlers action.HandlerSet) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read verb table: %w", err)
	}

	var t *Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		t, err = LoadJSON(data, handlers)
	case ".toml":
		t, err = LoadTOML(data, handlers)
	case ".yaml", ".yml":
		t, err = LoadYAML(data, handlers)
	default:
		return nil, fmt.Errorf("%s: unsupported verb table format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

type jsonVerb struct {
	HelpText  string      `json:"helptext"`
	ErrorText interface{} `json:"errortext"`
	Callback  string      `json:"callback"`
	Aliases   []string    `json:"aliases"`
}

// LoadJSON builds a Table from a JSON object whose keys are verb names.
// Declaration order is preserved.
func LoadJSON(data []byte, handlers action.HandlerSet) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode JSON: verb table must be an object")
	}

	var recs []record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
		name, _ := tok.(string)

		var v jsonVerb
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode JSON: verb %q: %w", name, err)
		}

		recs = append(recs, record{
			name:      name,
			help:      v.HelpText,
			errorText: v.ErrorText,
			callback:  v.Callback,
			aliases:   v.Aliases,
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	return build(recs, handlers)
}

type tomlVerb struct {
	HelpText  string      `toml:"helptext"`
	ErrorText interface{} `toml:"errortext"`
	Callback  string      `toml:"callback"`
	Aliases   []string    `toml:"aliases"`
}

// LoadTOML builds a Table from a TOML document with one table per verb.
// Declaration order is preserved.
func LoadTOML(data []byte, handlers action.HandlerSet) (*Table, error) {
	var raw map[string]tomlVerb

	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}

	var recs []record
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		name := key[0]
		v := raw[name]
		recs = append(recs, record{
			name:      name,
			help:      v.HelpText,
			errorText: v.ErrorText,
			callback:  v.Callback,
			aliases:   v.Aliases,
		})
	}

	return build(recs, handlers)
}

type yamlVerb struct {
	HelpText  string      `yaml:"helptext"`
	ErrorText interface{} `yaml:"errortext"`
	Callback  string      `yaml:"callback"`
	Aliases   []string    `yaml:"aliases"`
}

// LoadYAML builds a Table from a YAML mapping whose keys are verb names.
// Declaration order is preserved.
func LoadYAML(data []byte, handlers action.HandlerSet) (*Table, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 {
		return nil, fmt.Errorf("decode YAML: expected a single document")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode YAML: verb table must be a mapping")
	}

	var recs []record
	for i := 0; i+1 < len(doc.Content); i += 2 {
		name := doc.Content[i].Value

		var v yamlVerb
		if err := doc.Content[i+1].Decode(&v); err != nil {
			return nil, fmt.Errorf("decode YAML: verb %q: %w", name, err)
		}

		recs = append(recs, record{
			name:      name,
			help:      v.HelpText,
			errorText: v.ErrorText,
			callback:  v.Callback,
			aliases:   v.Aliases,
		})
	}

	return build(recs, handlers)
}

// parseErrorText converts the errortext field of a verb, which is either a
// single string or a mapping of error kind key to template, into an
// ErrorText. The key "default" in a mapping sets the generic template.
func parseErrorText(v interface{}) (ErrorText, error) {
	var et ErrorText

	switch typed := v.(type) {
	case nil:
		return et, nil
	case string:
		et.Generic = typed
		return et, nil
	case map[string]interface{}:
		for k, raw := range typed {
			s, ok := raw.(string)
			if !ok {
				return et, fmt.Errorf("%q: template must be a string", k)
			}
			if k == "default" {
				et.Generic = s
				continue
			}
			kind, err := nverrors.ParseKind(k)
			if err != nil {
				return et, err
			}
			if et.Keyed == nil {
				et.Keyed = map[string]string{}
			}
			et.Keyed[kind.Key()] = s
		}
		return et, nil
	default:
		return et, fmt.Errorf("must be a string or a mapping, not %T", v)
	}
}
