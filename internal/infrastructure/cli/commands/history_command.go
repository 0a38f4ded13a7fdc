package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/termbot/internal/app"
	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container func() *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect executed commands and file writes",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container func() *app.Container) *cobra.Command {
	var (
		limit int
		query string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auditStore(container)
			if err != nil {
				return err
			}
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), store, limit, query)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	cmd.Flags().StringVar(&query, "query", "", "Only show entries whose command or path contains this text")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container func() *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auditStore(container)
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container func() *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auditStore(container)
			if err != nil {
				return err
			}
			if err := store.ExportJSON(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to export history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History exported to %s\n", args[0])
			return nil
		},
	}
}

func auditStore(container func() *app.Container) (ports.AuditRepository, error) {
	c := container()
	if c == nil {
		return nil, errors.New(ErrContainerUnavailable)
	}
	if c.AuditStore == nil {
		return nil, errors.New(ErrHistoryDisabled)
	}
	return c.AuditStore, nil
}

// listHistoryEntries prints records newest first
func listHistoryEntries(ctx context.Context, out io.Writer, store ports.AuditRepository, limit int, query string) error {
	records, err := store.Records(ctx, limit, query)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, rec := range records {
		fmt.Fprintln(out, formatHistoryLine(rec))
	}
	return nil
}

func formatHistoryLine(rec domain.AuditRecord) string {
	danger := ""
	if rec.Dangerous {
		danger = " [dangerous]"
	}
	line := fmt.Sprintf("%s (%s)  %-5s %s%s -> %s",
		rec.Timestamp.Local().Format(domain.TimestampFormat),
		humanize.Time(rec.Timestamp),
		rec.Action,
		rec.Target,
		danger,
		rec.Outcome)
	if rec.Action == domain.AuditExec && rec.ExecResult().Ran() {
		line += fmt.Sprintf(" exit=%d %dms", rec.ExitCode, rec.DurationMS)
	}
	return line
}
