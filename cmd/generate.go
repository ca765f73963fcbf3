package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <category>",
	Short: "Generate a quiz with the configured LLM and print it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := strings.TrimSpace(strings.Join(args, " "))
		if category == "" {
			return fmt.Errorf("category must not be blank")
		}

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		count := cfg.Quiz.DefaultCount
		if cmd.Flags().Changed("count") {
			count, _ = cmd.Flags().GetInt("count")
		}
		if count < 1 {
			return fmt.Errorf("count must be at least 1, got %d", count)
		}

		gen, err := newGenerator(cmd.Context(), cfg, st.EventRepo())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Quiz.Timeout)
		defer cancel()

		questions, err := gen.Generate(ctx, category, count)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return printQuestions(cmd.OutOrStdout(), questions, asJSON)
	},
}

func init() {
	generateCmd.Flags().IntP("count", "n", 0, "Number of questions (default from config)")
	generateCmd.Flags().Bool("json", false, "Print questions as JSON")
}
