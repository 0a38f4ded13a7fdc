package domain

// DangerPattern is a lowercase substring whose presence in a command requires confirmation.
type DangerPattern struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}

// RiskAssessment aggregates classifier output for one command.
type RiskAssessment struct {
	Dangerous    bool
	MatchedRules []string
	Reasons      []string
}
