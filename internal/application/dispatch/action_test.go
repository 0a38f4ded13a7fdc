package dispatch

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kind  Kind
		arg   string
		limit int
	}{
		{name: "blank", line: "   ", kind: KindEmpty},
		{name: "exit", line: "exit", kind: KindExit},
		{name: "quit any case", line: "QuIt", kind: KindExit},
		{name: "exit needs exact match", line: "exit now", kind: KindChat, arg: "exit now"},
		{name: "exec keeps embedded spaces", line: "/exec echo  a   b", kind: KindExec, arg: "echo  a   b"},
		{name: "exec keeps leading spaces of remainder", line: "/exec   ls", kind: KindExec, arg: "  ls"},
		{name: "bare exec", line: "/exec", kind: KindExec, arg: ""},
		{name: "exec with trailing blanks only", line: "/exec    ", kind: KindExec, arg: ""},
		{name: "exec prefix needs a space", line: "/execute ls", kind: KindChat, arg: "/execute ls"},
		{name: "read", line: "/read notes/my file.txt", kind: KindRead, arg: "notes/my file.txt"},
		{name: "write", line: "/write out.txt", kind: KindWrite, arg: "out.txt"},
		{name: "sysinfo exact", line: "/sysinfo", kind: KindSysinfo},
		{name: "sysinfo with argument is chat", line: "/sysinfo now", kind: KindChat, arg: "/sysinfo now"},
		{name: "processes", line: "/processes", kind: KindProcesses},
		{name: "code", line: "/code reverse a string in go", kind: KindGenerate, arg: "reverse a string in go"},
		{name: "cmd", line: "/cmd list open ports", kind: KindGenerate, arg: "list open ports"},
		{name: "bare code", line: "/code", kind: KindGenerate},
		{name: "code matches as a bare prefix", line: "/coder x", kind: KindGenerate, arg: "x"},
		{name: "cmd prefix without a prompt", line: "/cmdfoo", kind: KindGenerate},
		{name: "cmd prompt starts after the first space", line: "/cmdlist open files", kind: KindGenerate, arg: "open files"},
		{name: "exec wins over chat text", line: "/exec /code", kind: KindExec, arg: "/code"},
		{name: "help", line: "/help", kind: KindHelp},
		{name: "reset", line: "/reset", kind: KindReset},
		{name: "history default", line: "/history", kind: KindHistory},
		{name: "history count", line: "/history 5", kind: KindHistory, arg: "5", limit: 5},
		{name: "history bad count", line: "/history many", kind: KindHistory, arg: "many", limit: -1},
		{name: "chat is trimmed", line: "  hello there  ", kind: KindChat, arg: "hello there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			if got.Kind != tt.kind || got.Arg != tt.arg || got.Limit != tt.limit {
				t.Errorf("Parse(%q) = {%s %q %d}, want {%s %q %d}", tt.line, got.Kind, got.Arg, got.Limit, tt.kind, tt.arg, tt.limit)
			}
		})
	}
}
