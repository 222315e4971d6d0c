package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/ChordSheet/core/parser"
	"github.com/FocuswithJustin/ChordSheet/core/serializer"
	"github.com/FocuswithJustin/ChordSheet/core/song"
	"github.com/FocuswithJustin/ChordSheet/internal/logging"
	"github.com/FocuswithJustin/ChordSheet/internal/validation"
)

// stdio is the path meaning stdin or stdout.
const stdio = "-"

// input is a chord sheet or serialized song read from disk or stdin.
type input struct {
	data []byte
	kind validation.FileType
}

// readInput reads path, transparently decompressing xz. Input is capped at
// validation.MaxFileSize after decompression.
func (g *Globals) readInput(ctx context.Context, path string) (*input, error) {
	if err := validation.ValidatePath(path); err != nil {
		logging.SecurityEvent("path_rejected", "cli", "path", path, "error", err.Error())
		return nil, fmt.Errorf("invalid input path: %w", err)
	}

	var r io.Reader
	if path == stdio {
		r = g.stdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	br := bufio.NewReaderSize(r, 512)
	header, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read input header: %w", err)
	}

	name := path
	if path == stdio {
		name = ""
	}
	fileType, err := validation.ValidateFileType(header, name)
	if err != nil {
		logging.SecurityEvent("file_type_rejected", "cli", "path", path, "error", err.Error())
		return nil, err
	}

	var body io.Reader = br
	if fileType == validation.FileTypeXZ {
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		body = xzr
	}

	data, err := validation.ReadLimited(body, validation.MaxFileSize)
	if err != nil {
		logging.SecurityEvent("input_too_large", "cli", "path", path)
		return nil, fmt.Errorf("read input: %w", err)
	}

	kind := validation.InnerFileType(name)
	logging.DebugContext(ctx, "input_read", "type", string(fileType), "content", string(kind), "bytes", len(data))
	return &input{data: data, kind: kind}, nil
}

// encodingFor maps a serialized file type to its encoding.
func encodingFor(kind validation.FileType) (serializer.Encoding, bool) {
	switch kind {
	case validation.FileTypeJSON:
		return serializer.JSON, true
	case validation.FileTypeYAML:
		return serializer.YAML, true
	case validation.FileTypeMsgpack:
		return serializer.Msgpack, true
	}
	return "", false
}

// loadSong reads path and builds a song from it. Serialized songs are
// decoded; anything else is parsed as a chord sheet in format, which is
// detected when empty or "auto".
func (g *Globals) loadSong(ctx context.Context, path, format string) (*song.Song, error) {
	in, err := g.readInput(ctx, path)
	if err != nil {
		return nil, err
	}

	if enc, ok := encodingFor(in.kind); ok {
		s, err := serializer.Decode(in.data, enc)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		logging.SongParsed(ctx, string(enc), len(s.Lines), 0)
		return s, nil
	}

	text := string(in.data)
	f := parser.Format(format)
	if format == "" || format == "auto" {
		f = parser.Detect(text)
	}
	p, err := parser.New(f)
	if err != nil {
		return nil, err
	}
	s, err := p.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for _, w := range s.Warnings {
		logging.ParseWarning(ctx, w.Line, w.Column, w.Message)
	}
	logging.SongParsed(ctx, string(f), len(s.Lines), len(s.Warnings))
	return s, nil
}

// writeOutput writes data to path, or stdout when path is empty or "-".
// Output is xz-compressed when compress is set or path ends in ".xz".
func (g *Globals) writeOutput(ctx context.Context, path, format string, data []byte, compress bool) error {
	toStdout := path == "" || path == stdio
	if !toStdout {
		if err := validation.ValidatePath(path); err != nil {
			logging.SecurityEvent("path_rejected", "cli", "path", path, "error", err.Error())
			return fmt.Errorf("invalid output path: %w", err)
		}
		compress = compress || strings.HasSuffix(strings.ToLower(path), ".xz")
	}

	if compress {
		var buf bytes.Buffer
		xzw, err := xz.NewWriter(&buf)
		if err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
		if _, err := xzw.Write(data); err != nil {
			return fmt.Errorf("xz write: %w", err)
		}
		if err := xzw.Close(); err != nil {
			return fmt.Errorf("xz close: %w", err)
		}
		data = buf.Bytes()
	}

	dest := path
	if toStdout {
		dest = "stdout"
		if _, err := g.stdout().Write(data); err != nil {
			return err
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	logging.OutputWritten(ctx, format, dest, len(data))
	return nil
}

// outputPath resolves where a rendered song goes inside dir. The name is
// derived from the song title, or the input file name when untitled.
func outputPath(dir, inputPath, title, ext string) (string, error) {
	name := title
	if name == "" {
		base := filepath.Base(inputPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		if name == stdio || name == "." {
			name = "song"
		}
	}
	filename, err := validation.SanitizeFilename(name)
	if err != nil {
		return "", fmt.Errorf("output name for %q: %w", name, err)
	}
	rel, err := validation.SanitizePath(dir, filename+ext)
	if err != nil {
		logging.SecurityEvent("path_rejected", "cli", "dir", dir, "name", filename)
		return "", err
	}
	return filepath.Join(dir, rel), nil
}
