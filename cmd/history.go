package cmd

import (
	"fmt"

	"github.com/abhisek/quizcraft/internal/screens/history"
	"github.com/abhisek/quizcraft/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryQuizEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No quizzes yet.")
			return nil
		}

		fmt.Fprintf(w, "%-5s  %s\n", "ID", "Event")
		fmt.Fprintln(w, rule(80))
		for _, e := range events {
			fmt.Fprintf(w, "%-5d  %s\n", e.ID, history.Describe(e))
			if e.Message != "" {
				fmt.Fprintf(w, "%-5s  %s\n", "", e.Message)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
}
