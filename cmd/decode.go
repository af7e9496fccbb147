package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pocat/hexline/pkg/hexline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"
)

const (
	defaultInputPath  = "input.txt"
	defaultOutputPath = "image.jpg"
)

var (
	decodeOutput   string
	decodeStrict   bool
	decodeChecksum bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [input] [output]",
	Short: "Decode a hex text export into a binary file",
	Long: `Decode a hex text export into a binary file.

The address column of every line is dropped, the remaining hex digits are
decoded and the bytes are written to the output file, replacing it. Nothing is
written if any line fails to decode.

Input defaults to input.txt and output to image.jpg.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := getOperationContext()
		defer cancel()

		input, output, err := resolveDecodePaths(args, decodeOutput)
		if err != nil {
			return err
		}

		logger := log.WithFields(logrus.Fields{"input": input, "output": output})
		logger.Debug("decoding")

		res, err := hexline.DecodeFile(ctx, input, output, decodeOptions(decodeStrict))
		if err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		logger.WithFields(logrus.Fields{
			"lines":   res.Lines,
			"skipped": res.SkippedLines,
			"bytes":   res.Bytes,
		}).Debug("decoded")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", render(out, successStyle, "Image saved as"), render(out, pathStyle, output))
		fmt.Fprintln(out, render(out, dimStyle, fmt.Sprintf("%d bytes from %d lines (%d skipped)", res.Bytes, res.Lines, res.SkippedLines)))

		if decodeChecksum {
			sum, err := fileDigest(output)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "BLAKE2b-256: %x\n", sum)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "", "Output file (overrides the second argument)")
	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", false, "Reject lines with an odd number of hex digits")
	decodeCmd.Flags().BoolVar(&decodeChecksum, "checksum", false, "Print the BLAKE2b-256 digest of the written file")
}

// resolveDecodePaths picks input and output paths from positional args and --output.
func resolveDecodePaths(args []string, outputFlag string) (string, string, error) {
	input, output := defaultInputPath, defaultOutputPath
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		if outputFlag != "" {
			return "", "", errors.New("output given both as argument and --output")
		}
		output = args[1]
	}
	if outputFlag != "" {
		output = outputFlag
	}
	if input == output {
		return "", "", fmt.Errorf("input and output are the same file: %s", input)
	}
	return input, output, nil
}

// fileDigest returns the BLAKE2b-256 digest of the file at path.
func fileDigest(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return h.Sum(nil), nil
}
