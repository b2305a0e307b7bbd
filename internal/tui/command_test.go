package tui

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs string
	}{
		{"quit", "quit", ""},
		{"q", "q", ""},
		{"search friday plans", "search", "friday plans"},
		{"THEME light", "theme", "light"},
		{"  name  Jane Doe  ", "name", "Jane Doe"},
		{"forward Frontend Team", "forward", "Frontend Team"},
		{"", "", ""},
	}

	for _, tt := range tests {
		got := ParseCommand(tt.input)
		if got.Name != tt.wantName || got.Args != tt.wantArgs {
			t.Errorf("ParseCommand(%q) = {%q %q}, want {%q %q}",
				tt.input, got.Name, got.Args, tt.wantName, tt.wantArgs)
		}
	}
}
