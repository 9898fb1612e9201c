// Package config loads the YAML configuration shared by the ring commands.
package config

import (
	"context"
	"fmt"
	"looping/internal/ctxlog"
	"looping/internal/db"
	"looping/internal/rotate"
	"looping/internal/server"
	"os"

	"github.com/goccy/go-yaml"
)

const DefaultFile = "config.yaml"

type Config struct {
	Log    ctxlog.Config `yaml:"log"`
	DB     db.Config     `yaml:"db"`
	Server server.Config `yaml:"server"`
	// Rotate is optional. Without an interval the rings only move on request.
	Rotate rotate.Config `yaml:"rotate"`
	// Rings are created on startup if they do not exist yet.
	Rings map[string][]string `yaml:"rings"`
}

func Load(ctx context.Context, filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	dec := yaml.NewDecoder(file, yaml.Strict())

	var config Config
	err = dec.Decode(&config)
	if err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	return config, nil
}
