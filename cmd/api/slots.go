package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/routes"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/timezone"
)

func newSlotsCmd() *cobra.Command {
	var date string

	c := &cobra.Command{
		Use:   "slots",
		Short: "Print the bookable slots for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			deps, cleanup, err := buildDeps(ctx, cfg, log)
			defer cleanup()
			if err != nil {
				return err
			}

			day, err := timezone.ParseDate(date, deps.Location)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", date, err)
			}

			av := routes.NewAvailability(deps).Execute(ctx, day)

			out := cmd.OutOrStdout()
			if av.Fallback {
				fmt.Fprintf(out, "%s (calendar unavailable, default slots)\n", av.Date)
			} else {
				fmt.Fprintf(out, "%s\n", av.Date)
			}
			for _, s := range av.Slots {
				fmt.Fprintf(out, "  %s  %s - %s\n", s.Time, s.Start.Format(time.Kitchen), s.End.Format(time.Kitchen))
			}
			if len(av.Slots) == 0 {
				fmt.Fprintln(out, "  no free slots")
			}
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "date to check (YYYY-MM-DD)")
	_ = c.MarkFlagRequired("date")
	return c
}
