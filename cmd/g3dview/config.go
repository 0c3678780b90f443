package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/g3d"
)

// loadConfig returns the default render configuration overlaid with the
// YAML file at path. An empty path returns the defaults.
//
//	rasterizer: Software
//	lighting: Diffuse
//	normal_map: false
func loadConfig(path string) (g3d.RenderConfig, error) {
	cfg := g3d.DefaultRenderConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
