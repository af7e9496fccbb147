package cmd

import (
	"fmt"

	"github.com/pocat/hexline/pkg/hexline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var encodeBytesPerLine int

var encodeCmd = &cobra.Command{
	Use:   "encode <binary> [output]",
	Short: "Write a binary file as a hex text export",
	Long: `Write a binary file as a hex text export that decode turns back into the
same bytes. Each line holds an address column of --prefix-width characters
followed by uppercase hex. Output defaults to <binary>.txt.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		output := input + ".txt"
		if len(args) > 1 {
			output = args[1]
		}
		if encodeBytesPerLine <= 0 {
			return fmt.Errorf("--bytes-per-line must be positive (got %d)", encodeBytesPerLine)
		}

		log.WithFields(logrus.Fields{"input": input, "output": output}).Debug("encoding")

		opts := hexline.EncodeOptions{PrefixWidth: prefixWidth, BytesPerLine: encodeBytesPerLine}
		if err := hexline.EncodeFile(input, output, opts); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", render(out, successStyle, "Hex text saved as"), render(out, pathStyle, output))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().IntVar(&encodeBytesPerLine, "bytes-per-line", hexline.DefaultBytesPerLine, "Number of bytes on each line")
}
