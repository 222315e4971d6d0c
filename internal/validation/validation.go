// Package validation checks the paths and files handed to the command line
// tool, guarding against path traversal and oversized input.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Security limits to prevent DoS attacks (CWE-400).
const (
	// MaxFileSize is the maximum allowed input size after decompression (16 MB).
	MaxFileSize = 16 << 20
	// MaxFilenameLength is the maximum allowed filename length.
	MaxFilenameLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrFileTooLarge     = errors.New("file too large")
	ErrFileType         = errors.New("file type mismatch")
)

// SanitizePath validates a user-supplied path and makes sure it does not
// escape baseDir. It returns the cleaned path relative to baseDir.
func SanitizePath(baseDir, userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}
	if len(userPath) > MaxPathLength {
		return "", ErrPathTooLong
	}

	cleanPath := filepath.Clean(userPath)
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}
	if filepath.IsAbs(cleanPath) {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(baseDir, cleanPath))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	return cleanPath, nil
}

// validateFilename checks that filename is a single safe path element.
func validateFilename(filename string) error {
	if filename == "" {
		return ErrInvalidFilename
	}
	if len(filename) > MaxFilenameLength {
		return ErrFilenameTooLong
	}
	if filename == "." || filename == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	}
	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename)
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidFilename)
	}
	for _, r := range filename {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidFilename)
		}
	}
	// Can be confused with command flags.
	if strings.HasPrefix(filename, "-") {
		return fmt.Errorf("%w: filename cannot start with hyphen", ErrInvalidFilename)
	}
	return nil
}

// ValidatePath checks a path for length and invalid characters without
// tying it to a base directory. "-" is accepted and means stdin or stdout.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// SanitizeFilename turns free text, typically a song title, into a safe
// filename. Separators become underscores and spaces become hyphens.
func SanitizeFilename(filename string) (string, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return "", ErrInvalidFilename
	}

	var cleaned strings.Builder
	for _, r := range filename {
		switch {
		case r == '/' || r == '\\':
			cleaned.WriteRune('_')
		case unicode.IsSpace(r):
			cleaned.WriteRune('-')
		case unicode.IsControl(r):
		default:
			cleaned.WriteRune(r)
		}
	}
	filename = strings.TrimLeft(cleaned.String(), "-.")

	for len(filename) > MaxFilenameLength {
		_, size := utf8.DecodeLastRuneInString(filename)
		filename = filename[:len(filename)-size]
	}

	if err := validateFilename(filename); err != nil {
		return "", err
	}
	return filename, nil
}

// FileType represents a validated file type.
type FileType string

const (
	// FileTypeSheet is chord sheet text in any supported dialect.
	FileTypeSheet FileType = "sheet"
	// FileTypeJSON is a serialized song as JSON.
	FileTypeJSON FileType = "json"
	// FileTypeYAML is a serialized song as YAML.
	FileTypeYAML FileType = "yaml"
	// FileTypeMsgpack is a serialized song as msgpack.
	FileTypeMsgpack FileType = "msgpack"
	// FileTypeXZ is an xz-compressed stream.
	FileTypeXZ FileType = "xz"
	// FileTypeUnknown is anything else.
	FileTypeUnknown FileType = "unknown"
)

var xzMagic = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}

// detectFileType determines the expected file type from the filename
// extension. A trailing ".xz" wins over the inner extension.
func detectFileType(filename string) FileType {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".xz") {
		return FileTypeXZ
	}
	switch filepath.Ext(lower) {
	case ".cho", ".chordpro", ".chopro", ".crd", ".pro", ".txt", ".tab":
		return FileTypeSheet
	case ".json":
		return FileTypeJSON
	case ".yaml", ".yml":
		return FileTypeYAML
	case ".msgpack", ".mpk":
		return FileTypeMsgpack
	}
	return FileTypeUnknown
}

// InnerFileType strips a trailing ".xz" and detects the type of what is
// left, so "song.cho.xz" is a sheet.
func InnerFileType(filename string) FileType {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".xz") {
		return detectFileType(filename[:len(filename)-len(".xz")])
	}
	return detectFileType(filename)
}

// ValidateFileType checks that header, the first bytes of a file, matches
// the type suggested by filename. Text types must look like text and xz
// files must carry the xz magic.
func ValidateFileType(header []byte, filename string) (FileType, error) {
	expected := detectFileType(filename)
	isXZ := bytes.HasPrefix(header, xzMagic)

	switch expected {
	case FileTypeXZ:
		if !isXZ {
			return FileTypeUnknown, fmt.Errorf("%w: %s has no xz header", ErrFileType, filename)
		}
	case FileTypeSheet, FileTypeJSON, FileTypeYAML:
		if isXZ {
			return FileTypeUnknown, fmt.Errorf("%w: extension suggests %s but content is xz", ErrFileType, expected)
		}
		if len(header) > 0 && !isLikelyText(header) {
			return FileTypeUnknown, fmt.Errorf("%w: extension suggests %s but content is binary", ErrFileType, expected)
		}
	case FileTypeUnknown:
		if isXZ {
			return FileTypeXZ, nil
		}
	}
	return expected, nil
}

// ReadLimited reads all of r, failing with ErrFileTooLarge once more than
// limit bytes arrive.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, limit)
	}
	return data, nil
}

// isLikelyText reports whether buf looks like UTF-8 or ASCII text.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	// Null bytes are a strong indicator of binary content.
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}

	printable := 0
	control := 0
	for _, b := range buf {
		if b >= 0x20 && b <= 0x7e || b == '\t' || b == '\n' || b == '\r' {
			printable++
		} else if b < 0x20 {
			control++
		}
		// UTF-8 lead and continuation bytes are neutral
	}

	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
