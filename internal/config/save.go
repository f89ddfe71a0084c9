package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hoverplane/internal/engine/grid"
)

// SavePath returns the file SaveParams writes: the file the config was
// loaded from, or config.yaml in the user's config directory.
func (c *Config) SavePath() string {
	if c.path != "" {
		return c.path
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SaveParams stores the plane parameters in the config file and returns the
// file it wrote. Nothing else in the file changes, so flag overrides such as
// --seed or --debug never end up on disk.
func (c *Config) SaveParams(p grid.Params) (string, error) {
	path := c.SavePath()
	if err := SaveParamsTo(path, p); err != nil {
		return "", err
	}
	c.Plane.Params = p
	return path, nil
}

// SaveParamsTo updates plane.width, plane.height, plane.width_segments and
// plane.height_segments in the YAML file at path, creating it if needed.
// Other keys and comments are kept.
func SaveParamsTo(path string, p grid.Params) error {
	var doc yaml.Node

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("reading config: %w", err)
	}

	// Empty or missing file
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing %s: top level is not a mapping", path)
	}

	plane := mappingEntry(root, "plane")
	for _, kv := range []struct {
		key   string
		value any
	}{
		{"width", p.Width},
		{"height", p.Height},
		{"width_segments", p.WidthSegments},
		{"height_segments", p.HeightSegments},
	} {
		if err := setEntry(plane, kv.key, kv.value); err != nil {
			return fmt.Errorf("encoding plane.%s: %w", kv.key, err)
		}
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// mappingEntry returns the mapping stored under key, replacing a missing or
// non-mapping value with an empty one.
func mappingEntry(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		v := m.Content[i+1]
		if v.Kind != yaml.MappingNode {
			v = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			m.Content[i+1] = v
		}
		return v
	}

	v := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, v)
	return v
}

func setEntry(m *yaml.Node, key string, value any) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return err
	}

	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = &v
			return nil
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, &v)
	return nil
}
