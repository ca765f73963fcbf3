package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/transport/ws"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve quizzes over WebSocket",
	Long: `Serve runs an HTTP server with a WebSocket endpoint at /ws. Each
connection drives its own quiz session; snapshots are pushed after every
change. /healthz reports liveness.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		addr := cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		eventRepo := st.EventRepo()
		gen, err := newGenerator(cmd.Context(), cfg, eventRepo)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		h := ws.NewHandler(gen, session.EngineConfig{
			Timeout:  cfg.Quiz.Timeout,
			Recorder: eventRepo,
		})
		log.Printf("quizcraft listening on %s", addr)
		return ws.ListenAndServe(ctx, addr, h)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8080)")
}
