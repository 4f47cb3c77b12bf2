package config

import (
	"fmt"
	"path/filepath"
	"strings"

	koanfjson "github.com/knadh/koanf/parsers/json"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/sqlecto/sqlecto-go/internal/transform"
)

// parserFor picks the koanf parser matching the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return koanfyaml.Parser(), nil
	case ".json":
		return koanfjson.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config file type %q: only .json, .yml, and .yaml files are supported", path)
	}
}

// load reads a YAML or JSON file into a fresh koanf instance.
func load(path string) (*koanf.Koanf, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return k, nil
}

// LoadFile loads a run configuration from a YAML or JSON file.
// Missing keys are left at their zero values; callers merge flag
// values on top and then ApplyDefaults/Validate.
func LoadFile(path string) (*Config, error) {
	k, err := load(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadMappingsFile loads table mappings from a YAML or JSON file with
// a top-level table_mappings list of {src_table, dst_table} entries.
func LoadMappingsFile(path string) ([]transform.TableMapping, error) {
	k, err := load(path)
	if err != nil {
		return nil, err
	}

	var mappings []transform.TableMapping
	if err := k.Unmarshal("table_mappings", &mappings); err != nil {
		return nil, fmt.Errorf("failed to parse table mappings file %s: %w", path, err)
	}
	return mappings, nil
}
