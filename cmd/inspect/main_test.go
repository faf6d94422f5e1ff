package main

import (
	"strings"
	"testing"
)

func TestRunTrace(t *testing.T) {
	var stdout, stderr strings.Builder
	code := run([]string{"PMGE-KJ9D-X4WRN", "QJNC-EWMH-UQ48H"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"Pair[1]:", "Game ID: 29E, Cheat ID: 06BC5", "014F06BC 50800000  verifier", "003F38AB 0000007F  code"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunErrorsGoToStderr(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
	}{
		{"no codes", nil, 2},
		{"bad parity", []string{"PMGE-KJ9D-X4WRM"}, 1},
		// the enable code's verifier spans two lines
		{"truncated cheat", []string{"UQRN-ER36-M3RD5"}, 1},
	}
	for _, c := range cases {
		var stdout, stderr strings.Builder
		got := run(c.args, &stdout, &stderr)
		if got != c.code {
			t.Errorf("%s: exit %d, want %d", c.name, got, c.code)
		}
		if stderr.Len() == 0 {
			t.Errorf("%s: nothing on stderr", c.name)
		}
		if strings.Contains(stdout.String(), "Error") || strings.Contains(stdout.String(), "usage") {
			t.Errorf("%s: error text on stdout: %q", c.name, stdout.String())
		}
	}
}
