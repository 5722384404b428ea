package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mamoruimade/basicChatFeature/internal/contextsource"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List system prompts and papers",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	src := contextsource.New(cfg.PromptDir, cfg.PaperDir, contextsource.WithLogger(logger))
	return printAssets(os.Stdout, src)
}

// printAssets writes prompts and documents in menu order. Missing folders are
// reported as empty.
func printAssets(out io.Writer, src *contextsource.Source) error {
	prompts, err := src.ListPrompts()
	if err != nil && !errors.Is(err, contextsource.ErrIO) {
		return err
	}
	docs, err := src.ListDocuments()
	if err != nil && !errors.Is(err, contextsource.ErrIO) {
		return err
	}

	if len(prompts) == 0 && len(docs) == 0 {
		fmt.Fprintln(out, "No prompts or papers found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tKIND\tNAME\tNOTE")
	for i, name := range prompts {
		note := "-"
		if contextsource.IsSummarizer(name) {
			note = "summarizes a paper"
		}
		fmt.Fprintf(w, "%d\tprompt\t%s\t%s\n", i+1, name, note)
	}
	for i, name := range docs {
		fmt.Fprintf(w, "%d\tpaper\t%s\t-\n", i+1, name)
	}
	return w.Flush()
}
