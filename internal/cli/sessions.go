package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayusman/nayana/internal/store"
)

type sessionSummary struct {
	ID          string         `json:"id"`
	StartedAt   time.Time      `json:"started_at"`
	EndedAt     *time.Time     `json:"ended_at,omitempty"`
	InitialMode string         `json:"initial_mode"`
	FinalMode   string         `json:"final_mode,omitempty"`
	Counts      map[string]int `json:"counts"`
}

func newSessionsCommand(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded tracking sessions",
		Long:  `Prints the most recent sessions from the journal as JSON, with per-kind event counts.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cfg.Store.Path == "" {
				return errors.New("session journal is disabled")
			}

			st, err := store.New(cfg.Store.Path)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer st.Close()

			summaries, err := summarize(st, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summaries)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of sessions to show (0 for all)")
	return cmd
}

func summarize(st *store.Store, limit int) ([]sessionSummary, error) {
	sessions, err := st.Sessions().List(limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		counts, err := st.Events().CountByKind(s.ID)
		if err != nil {
			return nil, fmt.Errorf("count events for %s: %w", s.ID, err)
		}
		out = append(out, sessionSummary{
			ID:          s.ID,
			StartedAt:   s.StartedAt,
			EndedAt:     s.EndedAt,
			InitialMode: s.InitialMode,
			FinalMode:   s.FinalMode,
			Counts:      counts,
		})
	}
	return out, nil
}
