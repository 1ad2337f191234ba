package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/eliseohh/demobot/internal/journal"
)

func newJournalCmd(opts *options) *cobra.Command {
	var (
		limit    int
		dbPath   string
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show the most recently handled updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := dbPath
			if path == "" {
				cfg, err := loadConfig(cmd, opts)
				if err != nil {
					return err
				}
				path = cfg.Journal.Path
			}
			if path == "" {
				return errors.New("journal is disabled: set journal.path, BOT_JOURNAL or --db")
			}

			j, err := journal.Open(path, newQuietLogger())
			if err != nil {
				return err
			}
			defer j.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				n, err := j.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Journal cleared (%d entries removed).\n", n)
				return nil
			}

			events, err := j.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			total, err := j.Count(cmd.Context())
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Fprintln(out, "No updates recorded.")
				return nil
			}

			bold := color.New(color.Bold)
			red := color.New(color.FgRed)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			bold.Fprintln(w, "TIME\tCHAT\tTRIGGER\tACTION\tERROR")
			for _, e := range events {
				errText := "-"
				if e.Error != "" {
					errText = red.Sprint(e.Error)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
					e.HandledAt.Local().Format("2006-01-02 15:04:05"), e.ChatID, e.Trigger, e.Action, errText)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nShowing %d of %d updates.\n", len(events), total)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	cmd.Flags().StringVar(&dbPath, "db", "", "journal database (defaults to journal.path from config)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every recorded update")
	return cmd
}
