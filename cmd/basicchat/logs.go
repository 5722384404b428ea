package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mamoruimade/basicChatFeature/internal/sink"
)

var (
	logsLimit int
	logsChars int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recorded error logs",
	Args:  cobra.NoArgs,
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 0, "Show only the N most recent records (0 for all)")
	logsCmd.Flags().IntVar(&logsChars, "chars", 500, "Characters to print from each record (0 for all)")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	return printLogs(os.Stdout, sink.NewErrorLog(cfg.ErrorLogDir, logger), cfg.ErrorLogDir, logsLimit, logsChars)
}

func printLogs(out io.Writer, errs *sink.ErrorLog, dir string, limit, chars int) error {
	records, err := errs.List()
	if errors.Is(err, sink.ErrNoLogDir) {
		fmt.Fprintf(out, "No log folder found at %s.\n", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("listing error logs: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No log files found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d log file(s) in %s:\n", len(records), dir)
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	for _, rec := range records {
		fmt.Fprintf(out, "\n--- %s ---\n", rec.Name)
		content, err := errs.Read(rec, chars)
		if err != nil {
			fmt.Fprintf(out, "(unreadable: %v)\n", err)
			continue
		}
		fmt.Fprintln(out, content)
	}
	return nil
}
