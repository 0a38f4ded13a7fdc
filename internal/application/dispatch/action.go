// Package dispatch classifies REPL input lines and routes them to the
// executor, file accessor, system inspector or chat session.
package dispatch

import (
	"strconv"
	"strings"
)

// Kind names the shape an input line was classified as.
type Kind string

const (
	KindEmpty     Kind = "empty"
	KindExit      Kind = "exit"
	KindExec      Kind = "exec"
	KindRead      Kind = "read"
	KindWrite     Kind = "write"
	KindSysinfo   Kind = "sysinfo"
	KindProcesses Kind = "processes"
	KindGenerate  Kind = "generate"
	KindHelp      Kind = "help"
	KindReset     Kind = "reset"
	KindHistory   Kind = "history"
	KindChat      Kind = "chat"
)

// Action is a classified input line. Arg holds the text after the command
// word exactly as typed, or the whole line for chat.
type Action struct {
	Kind  Kind
	Word  string
	Arg   string
	Limit int
}

// prefixed lists the commands that take an argument, in match order.
var prefixed = []struct {
	word string
	kind Kind
}{
	{word: "/exec", kind: KindExec},
	{word: "/read", kind: KindRead},
	{word: "/write", kind: KindWrite},
}

// Parse classifies one input line. The line is trimmed first; after that the
// remainder of a prefixed command is preserved byte for byte.
func Parse(line string) Action {
	line = strings.TrimSpace(line)
	if line == "" {
		return Action{Kind: KindEmpty}
	}

	lower := strings.ToLower(line)
	if lower == "exit" || lower == "quit" {
		return Action{Kind: KindExit, Word: line}
	}

	for _, p := range prefixed {
		if arg, ok := cutWord(line, p.word); ok {
			return Action{Kind: p.kind, Word: p.word, Arg: arg}
		}
	}

	switch line {
	case "/sysinfo":
		return Action{Kind: KindSysinfo, Word: line}
	case "/processes":
		return Action{Kind: KindProcesses, Word: line}
	}

	// Generation words match as bare prefixes: /coder x asks for "x".
	for _, word := range []string{"/code", "/cmd"} {
		if strings.HasPrefix(line, word) {
			_, arg, _ := strings.Cut(line, " ")
			return Action{Kind: KindGenerate, Word: word, Arg: arg}
		}
	}

	switch line {
	case "/help":
		return Action{Kind: KindHelp, Word: line}
	case "/reset":
		return Action{Kind: KindReset, Word: line}
	}
	if arg, ok := cutWord(line, "/history"); ok {
		return parseHistory(arg)
	}

	return Action{Kind: KindChat, Arg: line}
}

// cutWord matches word either alone or followed by a single space, returning
// everything after that space.
func cutWord(line, word string) (string, bool) {
	if line == word {
		return "", true
	}
	if strings.HasPrefix(line, word+" ") {
		return line[len(word)+1:], true
	}
	return "", false
}

// parseHistory reads the optional record count. An unusable count is reported as -1.
func parseHistory(arg string) Action {
	action := Action{Kind: KindHistory, Word: "/history", Arg: arg}
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return action
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		action.Limit = -1
		return action
	}
	action.Limit = n
	return action
}
