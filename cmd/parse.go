package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse numbered quiz text into questions",
	Long: `Parse reads quiz text in the generator's format (numbered questions
followed by a) to d) options) and prints the questions. The correct option
of each question is picked at random; --seed makes the pick reproducible.
With no file, or "-", it reads stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		parser := quiz.NewParser(nil)
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			parser = quiz.NewParser(rand.New(rand.NewPCG(seed, seed)))
		}

		questions := parser.Parse(string(raw))
		asJSON, _ := cmd.Flags().GetBool("json")
		return printQuestions(cmd.OutOrStdout(), questions, asJSON)
	},
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// printQuestions writes questions as indented JSON or as a readable list
// with the correct option marked.
func printQuestions(w io.Writer, questions []quiz.Question, asJSON bool) error {
	if asJSON {
		if questions == nil {
			questions = []quiz.Question{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(questions)
	}

	if len(questions) == 0 {
		fmt.Fprintln(w, "No questions found.")
		return nil
	}
	for i, q := range questions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Q%d: %s\n", i+1, q.Prompt)
		for j, a := range q.Answers {
			mark := " "
			if a.Correct {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %c) %s\n", mark, 'a'+j, a.Text)
		}
	}
	return nil
}

func init() {
	parseCmd.Flags().Uint64("seed", 0, "Seed the correct-option pick for reproducible output")
	parseCmd.Flags().Bool("json", false, "Print questions as JSON")
}
