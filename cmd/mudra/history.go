package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show actions recorded in the dispatch journal",
		Args:  cobra.NoArgs,
		RunE:  showHistory,
	}

	cmd.Flags().String("history", "", "sqlite journal file (defaults to the configured one)")
	cmd.Flags().Int("limit", 20, "number of events to show, 0 for all")
	cmd.Flags().Bool("counts", false, "summarize per gesture instead of listing events")
	cmd.Flags().Bool("clear", false, "delete every journaled event")
	return cmd
}

func showHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.History
	if cmd.Flags().Changed("history") {
		path, _ = cmd.Flags().GetString("history")
	}
	if path == "" {
		return fmt.Errorf("no journal configured; pass --history or set MUDRA_HISTORY")
	}

	st, err := store.New(path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer st.Close()
	events := st.Events()

	out := cmd.OutOrStdout()

	if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
		n, err := events.Clear()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d events.\n", n)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if counts, _ := cmd.Flags().GetBool("counts"); counts {
		rows, err := events.Counts()
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "GESTURE\tACTION\tEXECUTED\tFAILED")
		for _, c := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", c.Gesture, c.Action, c.Executed, c.Failed)
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	list, err := events.List(limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No events recorded.")
		return nil
	}

	fmt.Fprintln(tw, "TIME\tGESTURE\tACTION\tRESULT")
	for _, e := range list {
		result := "ok"
		if !e.Executed {
			result = "failed: " + e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Gesture, e.Action, result)
	}
	return nil
}
