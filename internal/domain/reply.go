package domain

// Speaker identifies who a reply is attributed to in the REPL.
type Speaker string

const (
	SpeakerSystem  Speaker = "System"
	SpeakerChatbot Speaker = "Chatbot"
)

// Reply is what the dispatcher hands back to the loop for display.
type Reply struct {
	Speaker Speaker
	Text    string
	Fault   Fault
}
