// Package shellsetup prints shell functions that run fluxdir and change
// into the directory it was showing on exit.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
)

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable is the binary the wrapper calls; os.Executable when empty.
	Executable string
}

// Shells lists the names PrintSetup accepts.
var Shells = []string{"bash", "zsh", "sh", "ksh", "fish", "pwsh", "tcsh", "csh", "cmd"}

// PrintSetup writes the wrapper for shellOverride, or for the detected
// shell when shellOverride is empty. Every wrapper relies on --print-dir:
// the TUI draws on the terminal device while stdout carries only the final
// directory.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	shell = canonicalShellName(shell)

	exe := cfg.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			exe = "fluxdir"
		}
	}
	quoted := strconv.Quote(exe)

	var err error
	switch shell {
	case "fish":
		_, err = fmt.Fprintf(w, `function fluxdir
    set -l dest (command %s --print-dir $argv)
    or return $status
    if test -n "$dest" -a -d "$dest"
        builtin cd -- "$dest"
    end
end
`, quoted)
	case "pwsh":
		_, err = fmt.Fprintf(w, `function fluxdir {
    $dest = & %s --print-dir @args
    if ($LASTEXITCODE -ne 0) {
        return
    }
    if ($dest -and (Test-Path -LiteralPath $dest -PathType Container)) {
        Set-Location -LiteralPath $dest
    }
}
`, quoted)
	case "tcsh", "csh":
		_, err = fmt.Fprintf(w, "alias fluxdir 'set _fd = \"`%s --print-dir \\!*`\" && test -d \"$_fd\" && cd \"$_fd\"; unset _fd'\n", exe)
	case "cmd":
		_, err = fmt.Fprintf(w, `:: Save as fluxdir.cmd somewhere on PATH.
@echo off
for /f "delims=" %%%%d in ('%s --print-dir %%*') do (
    if exist "%%%%d" cd /d "%%%%d"
)
`, quoted)
	case "bash", "zsh", "sh", "ksh":
		fallthrough
	default:
		_, err = fmt.Fprintf(w, `fluxdir() {
    dest=$(command %s --print-dir "$@") || return $?
    if [ -n "$dest" ] && [ -d "$dest" ]; then
        cd -- "$dest" || return $?
    fi
}
`, quoted)
	}
	return err
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell != "" {
			switch shell {
			case "pwsh", "cmd":
				return shell
			}
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := path.Base(value)
	base = strings.ToLower(base)
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "\"") {
		value = value[1:]
		if idx := strings.IndexRune(value, '"'); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if strings.HasPrefix(value, "'") {
		value = value[1:]
		if idx := strings.IndexRune(value, '\''); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}
