package shellsetup

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectShellInternal(t *testing.T) {
	tests := []struct {
		name          string
		goos          string
		envShell      string
		envComspec    string
		parent        func() string
		expectedShell string
	}{
		{
			name:          "uses SHELL when set",
			goos:          "linux",
			envShell:      "/bin/zsh",
			expectedShell: "zsh",
		},
		{
			name:          "falls back to parent shell",
			goos:          "linux",
			parent:        func() string { return "/usr/bin/bash" },
			expectedShell: "bash",
		},
		{
			name:          "windows prefers COMSPEC",
			goos:          "windows",
			envComspec:    `C:\Windows\System32\cmd.exe`,
			expectedShell: "cmd",
		},
		{
			name:          "windows fallback",
			goos:          "windows",
			expectedShell: "pwsh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := func(key string) string {
				switch key {
				case "SHELL":
					return tt.envShell
				case "COMSPEC":
					return tt.envComspec
				default:
					return ""
				}
			}
			got := detectShellInternal(tt.goos, env, tt.parent)
			if got != tt.expectedShell {
				t.Fatalf("detectShellInternal() = %q, want %q", got, tt.expectedShell)
			}
		})
	}
}

func TestPrintSetupWrappersUsePrintDir(t *testing.T) {
	cfg := Config{Executable: "/opt/bin/fluxdir", DetectParent: func() string { return "" }}

	for _, shell := range Shells {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			if err := PrintSetup(&buf, shell, cfg); err != nil {
				t.Fatalf("PrintSetup: %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, "--print-dir") {
				t.Fatalf("wrapper for %s does not use --print-dir:\n%s", shell, out)
			}
			if !strings.Contains(out, "/opt/bin/fluxdir") {
				t.Fatalf("wrapper for %s does not call the executable:\n%s", shell, out)
			}
		})
	}
}

func TestPrintSetupNormalizesOverride(t *testing.T) {
	cfg := Config{Executable: "fluxdir"}
	var buf bytes.Buffer
	if err := PrintSetup(&buf, `"C:\Program Files\PowerShell\7\pwsh.exe" -NoLogo`, cfg); err != nil {
		t.Fatalf("PrintSetup: %v", err)
	}
	if !strings.Contains(buf.String(), "Set-Location") {
		t.Fatalf("expected a PowerShell wrapper, got:\n%s", buf.String())
	}

	buf.Reset()
	if err := PrintSetup(&buf, "/usr/local/bin/fish", cfg); err != nil {
		t.Fatalf("PrintSetup: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "function fluxdir\n") {
		t.Fatalf("expected a fish wrapper, got:\n%s", buf.String())
	}
}
