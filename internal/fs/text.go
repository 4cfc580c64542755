package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	textSampleSize               = 4096
	headSampleSize               = 16 * 1024
	nonPrintableThresholdPercent = 30
)

var binaryExtensions = map[string]struct{}{
	".7z": {}, ".bin": {}, ".bmp": {}, ".bz2": {}, ".class": {}, ".dll": {},
	".docx": {}, ".dylib": {}, ".exe": {}, ".gif": {}, ".gz": {}, ".ico": {},
	".iso": {}, ".jar": {}, ".jpeg": {}, ".jpg": {}, ".mkv": {}, ".mov": {},
	".mp3": {}, ".mp4": {}, ".pdf": {}, ".png": {}, ".so": {}, ".tar": {},
	".tgz": {}, ".wasm": {}, ".xlsx": {}, ".xz": {}, ".zip": {},
}

// LooksLikeText samples the head of path and reports whether it should be
// handed to a text editor rather than the system opener.
func LooksLikeText(path string) (bool, error) {
	if hasBinaryExtension(path) {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	sample, err := io.ReadAll(io.LimitReader(f, textSampleSize))
	if err != nil {
		return false, err
	}
	return IsTextContent(sample), nil
}

// ReadTextHead returns up to maxLines lines from the start of a text file.
// UTF-8 and UTF-16 files with a byte order mark are decoded; ok is false
// when the content looks binary.
func ReadTextHead(path string, maxLines int) (lines []string, ok bool, err error) {
	if hasBinaryExtension(path) {
		return nil, false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	sample, err := io.ReadAll(io.LimitReader(f, headSampleSize))
	if err != nil {
		return nil, false, err
	}
	if !IsTextContent(sample) {
		return nil, false, nil
	}
	truncated := len(sample) == headSampleSize

	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), sample)
	if err != nil {
		decoded = sample
	}

	text := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	parts := strings.Split(text, "\n")
	if truncated && len(parts) > 1 {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if maxLines >= 0 && len(parts) > maxLines {
		parts = parts[:maxLines]
	}
	return parts, true, nil
}

// IsTextContent classifies a content sample as text or binary.
func IsTextContent(sample []byte) bool {
	if len(sample) == 0 {
		return true
	}
	if hasUnicodeBOM(sample) {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

func hasBinaryExtension(path string) bool {
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func hasUnicodeBOM(sample []byte) bool {
	switch {
	case bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}):
		return true
	case bytes.HasPrefix(sample, []byte{0xFF, 0xFE}), bytes.HasPrefix(sample, []byte{0xFE, 0xFF}):
		return true
	}
	return false
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == '\t' || b == '\n' || b == '\r' || b == 0x1B:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	default:
		return b >= 0x80
	}
}
