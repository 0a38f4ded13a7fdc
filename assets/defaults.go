package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultDangerPatternsYAML contains the embedded default danger pattern set.
//
//go:embed defaults/danger_patterns.yaml
var DefaultDangerPatternsYAML []byte
