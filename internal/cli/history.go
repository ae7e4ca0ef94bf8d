package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joelkehle/patentgrade/internal/store"
)

var (
	historyLimit    int
	historyDocument string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived evaluations",
	Long: `History lists archived evaluations, newest first.

Example:
  patentgrade history
  patentgrade history --document 10-2023-0123456 --limit 5`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum rows to list")
	historyCmd.Flags().StringVar(&historyDocument, "document", "", "only runs for this document")
}

func runHistory(cmd *cobra.Command, args []string) error {
	archive, err := store.Open(viper.GetString("db_path"))
	if err != nil {
		return err
	}
	defer archive.Close()

	var rows []store.Evaluation
	if historyDocument != "" {
		rows, err = archive.ByDocument(historyDocument, historyLimit)
	} else {
		rows, err = archive.Recent(historyLimit)
	}
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No archived evaluations.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tDOCUMENT\tGRADE\tSCORE\tDATE")
	for _, ev := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\n",
			ev.RunID, ev.DocumentID, ev.Grade, ev.OverallScore,
			ev.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
