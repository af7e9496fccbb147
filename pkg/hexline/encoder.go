package hexline

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultBytesPerLine is the number of bytes Encode puts on each line.
const DefaultBytesPerLine = 16

// EncodeOptions controls the text layout produced by Encode.
type EncodeOptions struct {
	PrefixWidth  int
	BytesPerLine int
}

// DefaultEncodeOptions returns options producing text that DefaultOptions decodes.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{PrefixWidth: DefaultPrefixWidth, BytesPerLine: DefaultBytesPerLine}
}

// Encode writes data as annotated hex lines, the inverse of Decode. Every line starts
// with an address column exactly PrefixWidth characters wide followed by uppercase hex.
func Encode(w io.Writer, data []byte, opts EncodeOptions) error {
	perLine := opts.BytesPerLine
	if perLine <= 0 {
		perLine = DefaultBytesPerLine
	}

	bw := bufio.NewWriter(w)
	for off := 0; off < len(data); off += perLine {
		end := off + perLine
		if end > len(data) {
			end = len(data)
		}
		if _, err := fmt.Fprintf(bw, "%s%X\n", addressColumn(off, opts.PrefixWidth), data[off:end]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeFile reads the binary file at inputPath and writes its annotated hex text to outputPath.
func EncodeFile(inputPath, outputPath string, opts EncodeOptions) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return &ResourceError{Op: "read", Path: inputPath, Err: err}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, data, opts); err != nil {
		return fmt.Errorf("failed to encode %s: %w", inputPath, err)
	}

	if err := WriteFileAtomic(outputPath, buf.Bytes(), outputPerm); err != nil {
		return &ResourceError{Op: "write", Path: outputPath, Err: err}
	}
	return nil
}

// addressColumn renders off as "<hex digits>: " padded to width characters.
// Addresses wider than the column keep their low-order digits.
func addressColumn(off, width int) string {
	if width < 3 {
		return strings.Repeat(" ", max(width, 0))
	}
	digits := width - 2
	addr := fmt.Sprintf("%0*X", digits, off)
	return addr[len(addr)-digits:] + ": "
}
