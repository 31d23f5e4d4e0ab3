package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brandonleon/carbsmart/internal/app"
	"github.com/brandonleon/carbsmart/internal/domain/model"
)

// errAuditLogUnavailable is returned when the log store could not be opened.
var errAuditLogUnavailable = errors.New("audit log store is unavailable; check MONGODB_URI")

func newLogsCommand(v *viper.Viper) *cobra.Command {
	var (
		opts   model.LogQueryOptions
		since  time.Duration
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent request and audit log entries",
		Long: `Read entries from the MongoDB log collection, newest first.

The command opens the log store even when AUDIT_LOG_ENABLED is false, so
entries written by an earlier run can be inspected.`,
		Example: `  carbsmart logs --action create_pan --since 24h
  carbsmart logs --pan 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Limit < 1 || opts.Limit > model.MaxLogQueryLimit {
				return fmt.Errorf("--limit must be between 1 and %d", model.MaxLogQueryLimit)
			}
			if since > 0 {
				start := time.Now().UTC().Add(-since)
				opts.StartTime = &start
			}

			cfg := loadConfig(v)
			cfg.Database.AuditLogEnabled = true

			ctx := cmd.Context()
			a, err := app.InitializeCore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close(ctx) }()

			logs := a.Database.LoggingService
			if logs == nil {
				return errAuditLogUnavailable
			}

			entries, err := logs.QueryLogs(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to query logs: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if entries == nil {
					entries = []model.LogEntry{}
				}
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No log entries.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tLEVEL\tACTION\tPAN\tPRINCIPAL\tMESSAGE")
			for _, e := range entries {
				pan := "-"
				if e.PanID > 0 {
					pan = fmt.Sprint(e.PanID)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Timestamp.UTC().Format(time.RFC3339), e.Level, orDash(e.ActionType), pan, orDash(e.Principal), e.Message)
			}
			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.ActionType, "action", "", "audit action (create_pan, update_pan, delete_pan, plan)")
	f.StringVar(&opts.Level, "level", "", "log level (info, warn, error)")
	f.Int64Var(&opts.PanID, "pan", 0, "pan id")
	f.StringVar(&opts.RequestID, "request-id", "", "request id")
	f.DurationVar(&since, "since", 0, "only entries newer than this, e.g. 24h")
	f.IntVar(&opts.Limit, "limit", 20, "maximum number of entries")
	f.BoolVar(&asJSON, "json", false, "print entries as JSON")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
