package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/audit"
	dbpkg "github.com/BruksfildServices01/pet-sitting-booking/internal/db"
	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
)

func newAuditCmd() *cobra.Command {
	var (
		f        audit.Filter
		from, to string
	)

	c := &cobra.Command{
		Use:   "audit",
		Short: "List booking audit entries (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cfg.DBUrl == "" {
				return errors.New("DATABASE_URL is not set")
			}

			if from != "" {
				if f.From, err = time.Parse(domain.DateLayout, from); err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
			}
			if to != "" {
				if f.To, err = time.Parse(domain.DateLayout, to); err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
				f.To = f.To.AddDate(0, 0, 1)
			}

			gdb, err := dbpkg.Open(cfg.DBUrl)
			if err != nil {
				return err
			}
			defer func() { _ = dbpkg.Close(gdb) }()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			logs, total, err := audit.New(gdb).List(ctx, f)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tACTION\tSESSION\tENTITY\tMETADATA")
			for _, l := range logs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s:%s\t%s\n",
					l.CreatedAt.Format(time.RFC3339), l.Action, l.SessionID, l.Entity, l.EntityID, l.Metadata)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d entries\n", len(logs), total)
			return nil
		},
	}

	c.Flags().StringVar(&f.SessionID, "session", "", "filter by session id")
	c.Flags().StringVar(&f.Action, "action", "", "filter by action")
	c.Flags().StringVar(&f.Entity, "entity", "", "filter by entity")
	c.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	c.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
	c.Flags().IntVar(&f.Page, "page", 1, "page number")
	c.Flags().IntVar(&f.Limit, "limit", 50, "entries per page (max 200)")
	return c
}
