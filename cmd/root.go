package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pocat/hexline/pkg/hexline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	// defaultOperationTimeout bounds a single command run.
	// Can be overridden via HEXLINE_TIMEOUT environment variable.
	defaultOperationTimeout = 2 * time.Minute

	envPrefixWidth = "HEXLINE_PREFIX_WIDTH"
	envTimeout     = "HEXLINE_TIMEOUT"
)

var (
	// Global flags
	prefixWidth int
	verbose     bool
	noColor     bool
)

var log = logrus.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "hexline",
	Short:         "Rebuild binary files from hex-editor text exports",
	SilenceErrors: true,
	SilenceUsage:  true,
	Long: `Rebuild binary files (usually JPEG images) from hex-editor text exports.

Every line of the export starts with a fixed-width address column that is
discarded; the rest of the line is decoded two hex digits at a time.

Example usage:
  hexline preview dump.txt
  hexline decode dump.txt photo.jpg
  hexline decode --prefix-width 10 --strict dump.txt -o photo.jpg
  hexline check *.txt
  hexline encode photo.jpg dump.txt

Environment Variables:
  HEXLINE_PREFIX_WIDTH  Address column width when --prefix-width is not given (default: 14)
  HEXLINE_TIMEOUT       Operation timeout duration (e.g., "5m", "30s", default: 2m)
  NO_COLOR              Disable styled output`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogging(cmd)
		return resolvePrefixWidth(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render(os.Stderr, errorStyle, "Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&prefixWidth, "prefix-width", hexline.DefaultPrefixWidth, "Number of address characters dropped from each line")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled output")
}

// configureLogging points the logger at the command's stderr and sets its level.
func configureLogging(cmd *cobra.Command) {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    noColor || os.Getenv("NO_COLOR") != "",
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}

// resolvePrefixWidth applies HEXLINE_PREFIX_WIDTH unless --prefix-width was given.
func resolvePrefixWidth(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("prefix-width") {
		if env := os.Getenv(envPrefixWidth); env != "" {
			w, err := strconv.Atoi(env)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", envPrefixWidth, env, err)
			}
			prefixWidth = w
		}
	}
	if prefixWidth < 0 {
		return fmt.Errorf("prefix width cannot be negative: %d", prefixWidth)
	}
	log.WithField("prefix_width", prefixWidth).Debug("resolved prefix width")
	return nil
}

// operationTimeout returns HEXLINE_TIMEOUT when it parses to a positive duration.
func operationTimeout() time.Duration {
	if v := os.Getenv(envTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.WithField("value", v).Warn("ignoring invalid " + envTimeout)
	}
	return defaultOperationTimeout
}

// getOperationContext returns a context with timeout and signal handling.
// The context will be cancelled on SIGINT/SIGTERM or when the timeout expires.
// The returned cancel function must be called to release resources.
func getOperationContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout())

	// Set up signal handling for graceful cancellation
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
			cancel()
		case <-ctx.Done():
			// Context cancelled or timed out, clean up signal handler
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// decodeOptions builds decoder options from the global flags.
func decodeOptions(strict bool) hexline.Options {
	return hexline.Options{PrefixWidth: prefixWidth, Strict: strict}
}
