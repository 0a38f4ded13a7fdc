package filesystem

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: "/home/tester"},
		{in: "~/.termbot/config.yaml", want: "/home/tester/.termbot/config.yaml"},
		{in: "/etc/hosts", want: "/etc/hosts"},
		{in: "notes/../todo.txt", want: "todo.txt"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got, want := AppDir(), filepath.Join("/home/tester", ".termbot"); got != want {
		t.Errorf("AppDir() = %q, want %q", got, want)
	}
}
