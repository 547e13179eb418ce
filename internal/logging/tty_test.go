package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{"terminal", nil, true, true},
		{"NO_COLOR set", map[string]string{"NO_COLOR": "1"}, true, false},
		{"NO_COLOR empty still counts", map[string]string{"NO_COLOR": ""}, true, false},
		{"TERM=dumb", map[string]string{"TERM": "dumb"}, true, false},
		{"TERM=xterm", map[string]string{"TERM": "xterm-256color"}, true, true},
		{"not a terminal", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetenv(t, "NO_COLOR")
			unsetenv(t, "TERM")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if got := supportsColor(tt.isTTY); got != tt.want {
				t.Errorf("supportsColor(%v) = %v, want %v", tt.isTTY, got, tt.want)
			}
		})
	}
}

func TestSupportsColor_Buffer(t *testing.T) {
	unsetenv(t, "NO_COLOR")
	if SupportsColor(&bytes.Buffer{}) {
		t.Error("a buffer never supports color")
	}
}

func TestIsTTY_NonTerminals(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	if IsTTY(&bytes.Buffer{}) {
		t.Error("IsTTY(buffer) = true")
	}
	if IsTTY(w) {
		t.Error("IsTTY(pipe) = true")
	}
	if IsInteractive(strings.NewReader("1\n")) {
		t.Error("IsInteractive(reader) = true")
	}
	if IsInteractive(r) {
		t.Error("IsInteractive(pipe) = true")
	}
}
