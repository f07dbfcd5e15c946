package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived verdict runs",
	Long:  `Lists archived verdict runs, newest first. Requires [storage.badger] enabled = true.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.Close()

	if application.Archive == nil {
		return fmt.Errorf("archive is disabled; set [storage.badger] enabled = true")
	}

	entries, err := application.Archive.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No archived verdicts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BASE NAME\tCOMPANY\tTICKER\tFILES\tGENERATED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			e.BaseName, e.Company, e.Ticker, len(e.SavedFiles), e.GeneratedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
