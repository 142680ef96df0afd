package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// fileConfig is the shape of an optional -config pegen.toml, supplying
// the same fields as the CLI flags for repeated or scripted generation.
// Flags given explicitly on the command line always win over the file.
type fileConfig struct {
	Grammar string `toml:"grammar"`
	Out     string `toml:"out"`
	Package string `toml:"package"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}
