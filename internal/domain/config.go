package domain

// Config mirrors ~/.termbot/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version" mapstructure:"config_format_version"`
	Model               ModelDefinition   `yaml:"model" mapstructure:"model"`
	Execution           ExecutionSettings `yaml:"execution" mapstructure:"execution"`
	Security            SecuritySettings  `yaml:"security" mapstructure:"security"`
	History             HistorySettings   `yaml:"history" mapstructure:"history"`
	UI                  UISettings        `yaml:"ui" mapstructure:"ui"`
}

// ExecutionSettings controls how shell commands run.
type ExecutionSettings struct {
	Shell          string `yaml:"shell" mapstructure:"shell"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// SecuritySettings points at an optional danger pattern file.
type SecuritySettings struct {
	RulesFile string `yaml:"rules_file" mapstructure:"rules_file"`
}

// HistorySettings configures the audit store.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// UISettings toggles terminal presentation.
type UISettings struct {
	RenderMarkdown bool `yaml:"render_markdown" mapstructure:"render_markdown"`
	Color          bool `yaml:"color" mapstructure:"color"`
}
