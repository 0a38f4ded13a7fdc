package security

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/termbot/assets"
	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/pkg/filesystem"
	"github.com/doeshing/termbot/internal/ports"
)

// EmbeddedSource is reported by Source when the built-in pattern set is in use.
const EmbeddedSource = "embedded"

// Classifier implements the DangerClassifier port with case-insensitive
// substring matching. The pattern set is fixed at construction.
type Classifier struct {
	patterns []domain.DangerPattern
	source   string
}

// PatternFile is the YAML schema root.
type PatternFile struct {
	DangerPatterns []domain.DangerPattern `yaml:"danger_patterns"`
}

// NewClassifier loads patterns from path, falling back to the embedded set
// when path is empty or the file does not exist.
func NewClassifier(path string) (*Classifier, error) {
	path = filesystem.ExpandPath(path)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			patterns, err := parsePatterns(data)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			if len(patterns) > 0 {
				return &Classifier{patterns: patterns, source: path}, nil
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	patterns, err := parsePatterns(assets.DefaultDangerPatternsYAML)
	if err != nil {
		return nil, fmt.Errorf("parse embedded patterns: %w", err)
	}
	return &Classifier{patterns: patterns, source: EmbeddedSource}, nil
}

// NewClassifierFromPatterns builds a classifier from bare substrings.
func NewClassifierFromPatterns(patterns ...string) *Classifier {
	rules := make([]domain.DangerPattern, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, domain.DangerPattern{Pattern: p})
	}
	return &Classifier{patterns: normalize(rules), source: "inline"}
}

// IsDangerous implements ports.DangerClassifier.
func (c *Classifier) IsDangerous(command string) bool {
	normalized := strings.ToLower(strings.TrimSpace(command))
	for _, pattern := range c.patterns {
		if strings.Contains(normalized, pattern.Pattern) {
			return true
		}
	}
	return false
}

// Assess implements ports.DangerClassifier, listing every matching pattern.
func (c *Classifier) Assess(command string) domain.RiskAssessment {
	normalized := strings.ToLower(strings.TrimSpace(command))
	var assessment domain.RiskAssessment
	for _, pattern := range c.patterns {
		if !strings.Contains(normalized, pattern.Pattern) {
			continue
		}
		assessment.Dangerous = true
		assessment.MatchedRules = append(assessment.MatchedRules, pattern.Pattern)
		if pattern.Message != "" {
			assessment.Reasons = append(assessment.Reasons, pattern.Message)
		}
	}
	return assessment
}

// Patterns returns a copy of the loaded substrings.
func (c *Classifier) Patterns() []string {
	out := make([]string, 0, len(c.patterns))
	for _, p := range c.patterns {
		out = append(out, p.Pattern)
	}
	return out
}

// Source names where the pattern set was loaded from.
func (c *Classifier) Source() string {
	return c.source
}

func parsePatterns(data []byte) ([]domain.DangerPattern, error) {
	var file PatternFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return normalize(file.DangerPatterns), nil
}

func normalize(patterns []domain.DangerPattern) []domain.DangerPattern {
	seen := make(map[string]bool, len(patterns))
	out := make([]domain.DangerPattern, 0, len(patterns))
	for _, p := range patterns {
		p.Pattern = strings.ToLower(strings.TrimSpace(p.Pattern))
		if p.Pattern == "" || seen[p.Pattern] {
			continue
		}
		seen[p.Pattern] = true
		out = append(out, p)
	}
	return out
}

var _ ports.DangerClassifier = (*Classifier)(nil)
