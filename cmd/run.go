package cmd

import (
	"github.com/abhisek/quizcraft/internal/app"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	gen, err := newGenerator(cmd.Context(), cfg, eventRepo)
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Generator:    gen,
		EventRepo:    eventRepo,
		DefaultCount: cfg.Quiz.DefaultCount,
		FetchTimeout: cfg.Quiz.Timeout,
	})
}
