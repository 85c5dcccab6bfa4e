package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"alphaduel/internal/backend"
	"alphaduel/internal/config"
	"alphaduel/internal/db"
	"alphaduel/internal/debate"
	"alphaduel/internal/export"
	"alphaduel/internal/session"
	"alphaduel/internal/ui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var backendURL string
	var symbol string
	var rounds int
	var debug bool

	root := &cobra.Command{
		Use:   "alphaduel",
		Short: "Bull vs. bear debate arena for market calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if backendURL != "" {
				cfg.Backend.URL = backendURL
			}
			if symbol != "" {
				cfg.Defaults.Symbol = symbol
			}
			if rounds != 0 {
				cfg.Defaults.MaxRounds = rounds
			}

			logger := newLogger(cfg, debug)
			client := backend.New(cfg.Backend.URL, logger)

			var store *db.Store
			if cfg.History.Enabled {
				store, err = db.Open()
				if err != nil {
					logger.Warn("history disabled", "err", err)
				} else {
					defer store.Close()
				}
			}

			// Best effort: the TUI works without the symbol list.
			var symbols []string
			if list, err := client.SymbolsWithTimeout(3 * time.Second); err == nil {
				for _, s := range list {
					symbols = append(symbols, s.Symbol)
				}
			}

			controller := session.New(client, cfg.Defaults.MaxRounds, logger)
			model := ui.New(controller, store, cfg.Defaults.Symbol, cfg.Defaults.MaxRounds, symbols)

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&backendURL, "backend", "", "orchestrator base URL (overrides config)")
	root.Flags().StringVarP(&symbol, "symbol", "s", "", "symbol to debate (overrides config)")
	root.Flags().IntVarP(&rounds, "rounds", "r", 0, "debate rounds, 1-3 (overrides config)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output to alphaduel.log")

	root.AddCommand(historyCmd(), exportCmd(), symbolsCmd(&backendURL), healthCmd(&backendURL))
	return root
}

func newLogger(cfg *config.Config, debug bool) *log.Logger {
	out := io.Discard
	if path := cfg.Log.File; path != "" || debug {
		if path == "" {
			path = "alphaduel.log"
		}
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			out = f
		}
	}

	logger := log.New(out)
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.WarnLevel
	}
	if debug {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List archived debates",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := db.Open()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.ListSessions()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No archived debates yet.")
				return nil
			}

			for _, r := range records {
				winner := r.Winner
				if winner == "" {
					winner = "-"
				}
				fmt.Printf("%s  %-6s %-5s %3d%%  %s\n",
					r.CreatedAt.Format("2006-01-02 15:04"), r.Symbol, winner, r.ConfidenceScore, r.ID)
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export an archived debate to markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := db.Open()
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := archivedSession(store, args[0])
			if err != nil {
				return err
			}

			path, err := export.WriteToFile(sess, outDir)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default current)")
	return cmd
}

// archivedSession rebuilds a Session from its archive rows, enough for
// the exporter.
func archivedSession(store *db.Store, id string) (debate.Session, error) {
	rec, err := store.GetSession(id)
	if err != nil {
		return debate.Session{}, fmt.Errorf("session %s: %w", id, err)
	}

	rows, err := store.GetMessages(id)
	if err != nil {
		return debate.Session{}, err
	}

	sess := debate.Session{
		Status: debate.Status(rec.Status),
		Symbol: rec.Symbol,
		Query:  rec.Query,
	}
	for _, row := range rows {
		sess.Messages = append(sess.Messages, debate.Message{
			Type:    debate.MessageType(row.MsgType),
			Content: row.Content,
			Round:   row.Round,
		})
	}
	if rec.Winner != "" {
		score := rec.ConfidenceScore
		wager := rec.WagerAmount
		sess.Summary = &debate.Summary{
			Winner:          rec.Winner,
			ConfidenceScore: &score,
			WagerAmount:     &wager,
		}
	}
	return sess, nil
}

func symbolsCmd(backendURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List symbols supported by the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if *backendURL != "" {
				cfg.Backend.URL = *backendURL
			}

			client := backend.New(cfg.Backend.URL, log.New(io.Discard))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			syms, err := client.Symbols(ctx)
			if err != nil {
				return err
			}
			for _, s := range syms {
				fmt.Printf("%-8s %s\n", s.Symbol, s.Name)
			}
			return nil
		},
	}
}

func healthCmd(backendURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the orchestrator backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if *backendURL != "" {
				cfg.Backend.URL = *backendURL
			}

			client := backend.New(cfg.Backend.URL, log.New(io.Discard))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := client.Health(ctx); err != nil {
				return err
			}
			fmt.Printf("backend healthy: %s\n", cfg.Backend.URL)
			return nil
		},
	}
}
