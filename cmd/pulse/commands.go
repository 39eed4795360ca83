package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/neet-pulse/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(c *cli) *cobra.Command {
	var input domain.RecordInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a practice test result",
		Long: `Log a practice test result. Scores that are not numbers count as 0 and
scores above a subject maximum (physics 180, chemistry 180, biology 360) are
capped at it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Date == "" {
				input.Date = c.now().Format(domain.DateLayout)
			}

			deps, log, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close(deps, log)

			record, records, err := deps.Records.Add(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to save record: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %s (%s): %d/%d\n", record.TestName, record.Date, record.Total, domain.MaxScoreTotal)
			fmt.Fprintf(out, "ID: %s\n", record.ID)
			for _, row := range domain.History(records) {
				if row.Record.ID == record.ID && row.HasTrend {
					fmt.Fprintf(out, "Trend: %s\n", colorTrend(row.Trend))
					break
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Date, "date", "", "test date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&input.TestName, "name", "", "test name (default MOCK-YYYYMMDD)")
	cmd.Flags().StringVar(&input.Physics, "physics", "0", "physics score")
	cmd.Flags().StringVar(&input.Chemistry, "chemistry", "0", "chemistry score")
	cmd.Flags().StringVar(&input.Biology, "biology", "0", "biology score")
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every logged test, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, log, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close(deps, log)

			records := deps.Records.ListAll(cmd.Context())
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), noRecordsText)
				return nil
			}
			renderHistory(cmd.OutOrStdout(), domain.History(records))
			return nil
		},
	}
}

func newDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a logged test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			out := cmd.OutOrStdout()

			if !yes && !confirm(cmd, fmt.Sprintf("Delete record %s? [y/N] ", id)) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}

			deps, log, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close(deps, log)

			before := len(deps.Records.ListAll(cmd.Context()))
			remaining, err := deps.Records.Remove(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete record: %w", err)
			}
			if len(remaining) == before {
				fmt.Fprintf(out, "No record with id %s.\n", id)
				return nil
			}
			fmt.Fprintf(out, "Deleted. %d records remain.\n", len(remaining))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func newTargetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "target [score]",
		Short: "Show or set the target score",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target int
			if len(args) == 1 {
				n, err := strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil {
					return errors.New("target must be a whole number")
				}
				target = n
			}

			deps, log, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close(deps, log)

			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Target: %d/%d\n", deps.Records.TargetScore(cmd.Context()), domain.MaxScoreTotal)
				return nil
			}
			if err := deps.Records.SetTargetScore(cmd.Context(), target); err != nil {
				return fmt.Errorf("failed to set target: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Target set to %d/%d\n", target, domain.MaxScoreTotal)
			return nil
		},
	}
}

func newSummaryCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the dashboard figures for the latest test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, log, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close(deps, log)

			records := deps.Records.ListAll(cmd.Context())
			summary := domain.Summarize(records, deps.Records.TargetScore(cmd.Context()))
			renderSummary(cmd.OutOrStdout(), summary)
			if len(records) > 0 {
				rows := domain.History(records)
				renderHistory(cmd.OutOrStdout(), rows[:min(len(rows), 3)])
			}
			return nil
		},
	}
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask the AI mentor to assess the last five tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, log, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close(deps, log)

			insight := deps.Analyzer.Analyze(cmd.Context(), deps.Records.ListAll(cmd.Context()))
			renderInsight(cmd.OutOrStdout(), insight, raw)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the report without markdown rendering")
	return cmd
}
