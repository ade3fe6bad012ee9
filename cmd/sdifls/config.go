package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/sdif"
)

type toolConfig struct {
	RegistryFile   string
	MaxFrameBytes  uint32
	MaxMatrixBytes uint32
	ShowMatrices   bool
}

func defaultToolConfig() toolConfig {
	return toolConfig{ShowMatrices: true}
}

type fileConfig struct {
	RegistryFile   string `toml:"registry_file"`
	MaxFrameBytes  int64  `toml:"max_frame_bytes"`
	MaxMatrixBytes int64  `toml:"max_matrix_bytes"`
	ShowMatrices   bool   `toml:"show_matrices"`
}

func loadToolConfig(path string) (toolConfig, error) {
	cfg := defaultToolConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return toolConfig{}, fmt.Errorf("load sdifls config: %w", err)
	}

	if meta.IsDefined("registry_file") {
		cfg.RegistryFile = strings.TrimSpace(raw.RegistryFile)
	}
	if meta.IsDefined("max_frame_bytes") {
		if raw.MaxFrameBytes <= 0 {
			return toolConfig{}, fmt.Errorf("max_frame_bytes must be positive, got %d", raw.MaxFrameBytes)
		}
		cfg.MaxFrameBytes = uint32(raw.MaxFrameBytes)
	}
	if meta.IsDefined("max_matrix_bytes") {
		if raw.MaxMatrixBytes <= 0 {
			return toolConfig{}, fmt.Errorf("max_matrix_bytes must be positive, got %d", raw.MaxMatrixBytes)
		}
		cfg.MaxMatrixBytes = uint32(raw.MaxMatrixBytes)
	}
	if meta.IsDefined("show_matrices") {
		cfg.ShowMatrices = raw.ShowMatrices
	}

	return cfg, nil
}

func (c toolConfig) sessionConfig() (sdif.Config, error) {
	reg := sdif.BuiltinRegistry()
	if c.RegistryFile != "" {
		ext, err := reg.WithTOML(c.RegistryFile)
		if err != nil {
			return sdif.Config{}, err
		}
		reg = ext
	}
	return sdif.Config{
		Registry: reg,
		Limits: sdif.Limits{
			MaxFrameBytes:  c.MaxFrameBytes,
			MaxMatrixBytes: c.MaxMatrixBytes,
		},
	}, nil
}
