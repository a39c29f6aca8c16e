package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadData reads template variables from a JSON or YAML file. An empty path
// returns an empty map.
func LoadData(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]any{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read data %s: %w", path, err)
	}
	return ParseData(data, path)
}

// ParseData decodes a JSON or YAML mapping.
func ParseData(data []byte, source string) (map[string]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]any{}, nil
	}

	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}

	out = map[string]any{}
	if err := yaml.Unmarshal(data, &out); err == nil {
		return out, nil
	}

	return nil, fmt.Errorf("config: parse data %s: expected a JSON or YAML mapping", source)
}
