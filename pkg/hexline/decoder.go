// Package hexline converts hex-editor text exports back into the raw bytes they describe.
//
// Each input line carries a fixed-width annotation column (address/offset) followed by a
// hexadecimal payload. The annotation is discarded and the payload is decoded two
// characters at a time.
package hexline

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultPrefixWidth is the width of the address column written by the hex editor export.
const DefaultPrefixWidth = 14

// Options controls how lines are decoded.
type Options struct {
	// PrefixWidth is the number of characters dropped from the start of every line.
	PrefixWidth int
	// Strict rejects a payload of odd length instead of decoding the single
	// trailing digit as its own byte.
	Strict bool
}

// DefaultOptions returns the options matching the stock export format.
func DefaultOptions() Options {
	return Options{PrefixWidth: DefaultPrefixWidth}
}

// Result summarizes a decode pass.
type Result struct {
	Lines        int // lines read
	DecodedLines int // lines that contributed bytes
	SkippedLines int // lines with an empty payload
	Bytes        int // bytes produced
}

// DecodeLine decodes the payload of a single line. lineNum is only used in errors.
// A line whose payload is empty returns a nil slice and no error.
func DecodeLine(line string, lineNum int, opts Options) ([]byte, error) {
	return appendLine(nil, line, lineNum, opts)
}

// Decode reads r line by line and returns the concatenated payload bytes.
// Line endings (\n or \r\n) are never part of the payload. The context is checked
// between lines.
func Decode(ctx context.Context, r io.Reader, opts Options) ([]byte, *Result, error) {
	res := &Result{}
	var out []byte

	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return nil, res, err
		}

		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, res, &ResourceError{Op: "read", Err: readErr}
		}
		if line == "" && readErr != nil {
			break
		}

		res.Lines++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		before := len(out)
		var err error
		out, err = appendLine(out, line, res.Lines, opts)
		if err != nil {
			return nil, res, err
		}
		if n := len(out) - before; n > 0 {
			res.DecodedLines++
			res.Bytes += n
		} else {
			res.SkippedLines++
		}

		if readErr != nil {
			break
		}
	}

	return out, res, nil
}

// DecodeFile decodes inputPath and writes the bytes to outputPath, replacing any
// previous contents. Nothing is written unless the whole input decodes; on failure
// outputPath keeps whatever it held before.
func DecodeFile(ctx context.Context, inputPath, outputPath string, opts Options) (*Result, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, &ResourceError{Op: "open", Path: inputPath, Err: err}
	}
	defer in.Close()

	data, res, err := Decode(ctx, in, opts)
	if err != nil {
		var decErr *DecodeError
		var resErr *ResourceError
		switch {
		case errors.As(err, &decErr):
			decErr.Path = inputPath
		case errors.As(err, &resErr):
			resErr.Path = inputPath
		}
		return res, err
	}

	if err := WriteFileAtomic(outputPath, data, outputPerm); err != nil {
		return res, &ResourceError{Op: "write", Path: outputPath, Err: err}
	}
	return res, nil
}

// appendLine decodes one line onto dst.
func appendLine(dst []byte, line string, lineNum int, opts Options) ([]byte, error) {
	rest, skipped := cutPrefix(line, opts.PrefixWidth)

	// Track how many characters were trimmed so errors point into the original line.
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	skipped += utf8.RuneCountInString(rest[:len(rest)-len(trimmed)])
	payload := strings.TrimRightFunc(trimmed, unicode.IsSpace)
	if payload == "" {
		return dst, nil
	}

	for i := 0; i < len(payload); i += 2 {
		end := i + 2
		if end > len(payload) {
			end = len(payload)
		}
		tok := payload[i:end]
		col := skipped + utf8.RuneCountInString(payload[:i]) + 1

		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return dst, &DecodeError{
				Line:   lineNum,
				Column: col + badDigit(tok),
				Token:  tok,
				Err:    ErrInvalidHex,
			}
		}
		if len(tok) == 1 && opts.Strict {
			return dst, &DecodeError{Line: lineNum, Column: col, Token: tok, Err: ErrOddLength}
		}
		dst = append(dst, byte(v))
	}
	return dst, nil
}

// cutPrefix drops the first width characters of line and reports how many were dropped.
func cutPrefix(line string, width int) (string, int) {
	if width <= 0 {
		return line, 0
	}
	n := 0
	for i := range line {
		if n == width {
			return line[i:], n
		}
		n++
	}
	return "", n
}

// badDigit returns the offset of the first non-hex byte in tok.
func badDigit(tok string) int {
	for i := 0; i < len(tok); i++ {
		if !isHexDigit(tok[i]) {
			return i
		}
	}
	return 0
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'F') || (b >= 'a' && b <= 'f')
}
