package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pocat/hexline/pkg/hexline"
	"github.com/spf13/cobra"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <input>...",
	Short: "Verify that hex text exports decode cleanly",
	Long: `Decode every input without writing anything and report each file that
fails. Exits non-zero if any input fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := getOperationContext()
		defer cancel()

		return checkFiles(ctx, cmd.OutOrStdout(), args, decodeOptions(checkStrict))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Reject lines with an odd number of hex digits")
}

// checkFiles decodes each path and collects every failure.
func checkFiles(ctx context.Context, w io.Writer, paths []string, opts hexline.Options) error {
	var result *multierror.Error
	for _, path := range paths {
		res, err := checkFile(ctx, path, opts)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(w, "%s %s\n", render(w, errorStyle, "FAIL"), path)
			result = multierror.Append(result, err)
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", render(w, successStyle, "ok  "), path,
			render(w, dimStyle, fmt.Sprintf("(%d bytes)", res.Bytes)))
	}
	return result.ErrorOrNil()
}

func checkFile(ctx context.Context, path string, opts hexline.Options) (*hexline.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &hexline.ResourceError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	_, res, err := hexline.Decode(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithField("input", path).Debugf("%d bytes from %d lines", res.Bytes, res.Lines)
	return res, nil
}
