package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fam-bot/internal/scheduler"
	"fam-bot/internal/storage"
)

var flagRetentionDays int

func newCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete competitions past their retention window",
		RunE:  runCleanup,
	}
	cmd.Flags().IntVar(&flagRetentionDays, "retention-days", 1, "Keep competitions until this many days after their date")
	return cmd
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	cutoff := scheduler.RetentionCutoff(flagRetentionDays)
	deleted, err := storage.NewCompetitionRepo(e.db).DeleteBefore(cmd.Context(), cutoff)
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(os.Stdout, map[string]interface{}{
			"cutoff":  cutoff.Format("2006-01-02"),
			"deleted": deleted,
		})
	}
	return writeKV(os.Stdout, [][2]string{
		{"Cutoff", cutoff.Format("2006-01-02")},
		{"Deleted", fmt.Sprint(deleted)},
	})
}
