package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mamoruimade/basicChatFeature/internal/config"
	"github.com/mamoruimade/basicChatFeature/model"
	"github.com/mamoruimade/basicChatFeature/store/sqlite"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the PDF extraction cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached extractions",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all cached extractions",
	Args:  cobra.NoArgs,
	RunE:  runCachePurge,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openCache opens the extraction cache without starting the app log.
func openCache() (*sqlite.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	st, err := sqlite.New(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return st, nil
}

func runCacheList(cmd *cobra.Command, args []string) error {
	st, err := openCache()
	if err != nil {
		return err
	}
	defer st.Close()
	return printCache(os.Stdout, st)
}

func printCache(out io.Writer, st *sqlite.Store) error {
	entries, err := st.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Cache is empty.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIGEST\tNAME\tPAGES\tCHARS\tCACHED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			model.Truncate(e.Digest, 12), e.Name, e.Pages, len(e.Text), e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	st, err := openCache()
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.Purge()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d cached extraction(s).\n", n)
	return nil
}
