package domain

// Role tags a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message replayed verbatim to the completion service.
type Turn struct {
	Role    Role
	Content string
}

// CodeOnlyInstruction is the system turn used by /code and /cmd.
const CodeOnlyInstruction = "You are a helpful assistant that ONLY responds with shell commands or code snippets. No explanations."
