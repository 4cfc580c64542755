package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"
)

var lookPath = exec.LookPath

// detectEditorTemplate picks the command template used for text files: the
// configured one, then $VISUAL and $EDITOR, then a platform default.
func detectEditorTemplate(configured string) (string, bool) {
	return detectEditorTemplateInternal(runtime.GOOS, configured, os.Getenv, lookPath)
}

func detectEditorTemplateInternal(goos, configured string, getenv func(string) string, lookPath func(string) (string, error)) (string, bool) {
	if strings.TrimSpace(configured) != "" {
		return configured, true
	}

	for _, candidate := range []string{getenv("VISUAL"), getenv("EDITOR")} {
		args := parseCommand(candidate)
		if len(args) == 0 {
			continue
		}
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return shellquote.Join(args...), true
		}
	}

	var defaults [][]string
	if strings.EqualFold(goos, "windows") {
		defaults = [][]string{
			{"code", "--wait"},
			{"notepad++.exe"},
			{"notepad.exe"},
		}
	} else {
		defaults = [][]string{
			{"vim"},
			{"nano"},
			{"vi"},
		}
	}
	for _, def := range defaults {
		if resolved, ok := resolveExecutable(def[0], lookPath); ok {
			return shellquote.Join(append([]string{resolved}, def[1:]...)...), true
		}
	}
	return "", false
}

// detectOpenerTemplate picks the command that hands a file to the desktop.
func detectOpenerTemplate(configured string) (string, bool) {
	return detectOpenerTemplateInternal(runtime.GOOS, configured, lookPath)
}

func detectOpenerTemplateInternal(goos, configured string, lookPath func(string) (string, error)) (string, bool) {
	if strings.TrimSpace(configured) != "" {
		return configured, true
	}

	switch strings.ToLower(goos) {
	case "windows":
		return `cmd /c start "" {path}`, true
	case "darwin":
		if resolved, ok := resolveExecutable("open", lookPath); ok {
			return shellquote.Join(resolved), true
		}
		return "", false
	}
	for _, candidate := range [][]string{{"xdg-open"}, {"gio", "open"}, {"wslview"}} {
		if resolved, ok := resolveExecutable(candidate[0], lookPath); ok {
			return shellquote.Join(append([]string{resolved}, candidate[1:]...)...), true
		}
	}
	return "", false
}

// parseCommand splits an environment command such as
// `code --wait` or `"/opt/my editor/bin/ed" -n` with shell quoting rules.
func parseCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}
	args, err := shellquote.Split(cmd)
	if err != nil || len(args) == 0 {
		return nil
	}
	args[0] = expandUserPath(args[0])
	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}

func resolveExecutable(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(expandUserPath(cmd))
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}
