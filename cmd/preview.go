package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pocat/hexline/pkg/hexline"
	"github.com/spf13/cobra"
)

var previewMaxLines int

var previewCmd = &cobra.Command{
	Use:   "preview <input>",
	Short: "Show a hex text export before decoding it",
	Long: `Print the raw text of a hex export followed by a summary of what decode
would produce. On a terminal, long lines are cut to the window width.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := getOperationContext()
		defer cancel()

		input := args[0]
		text, err := os.ReadFile(input)
		if err != nil {
			return &hexline.ResourceError{Op: "read", Path: input, Err: err}
		}

		out := cmd.OutOrStdout()
		if err := writePreview(out, text, previewMaxLines, terminalWidth(out)); err != nil {
			return err
		}

		_, res, err := hexline.Decode(ctx, bytes.NewReader(text), decodeOptions(false))
		if err != nil {
			fmt.Fprintln(out, render(out, errorStyle, fmt.Sprintf("decode would fail: %v", err)))
			return nil
		}
		fmt.Fprintln(out, render(out, dimStyle, fmt.Sprintf("%d lines, %d bytes would be written (%d lines skipped)",
			res.Lines, res.Bytes, res.SkippedLines)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVarP(&previewMaxLines, "max-lines", "m", 0, "Show at most this many lines (0 = all)")
}

// writePreview copies text to w line by line. maxLines of 0 prints everything;
// width of 0 disables truncation.
func writePreview(w io.Writer, text []byte, maxLines, width int) error {
	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)

	shown, total := 0, 0
	for sc.Scan() {
		total++
		if maxLines > 0 && shown >= maxLines {
			continue
		}
		shown++
		fmt.Fprintln(bw, truncate(string(bytes.TrimSuffix(sc.Bytes(), []byte("\r"))), width))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read preview: %w", err)
	}
	if hidden := total - shown; hidden > 0 {
		fmt.Fprintf(bw, "... %d more lines\n", hidden)
	}
	return bw.Flush()
}

// truncate cuts s to width characters, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	n := 0
	for i := range s {
		if n == width-1 {
			return s[:i] + "…"
		}
		n++
	}
	return s
}
