package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
	"github.com/spf13/cobra"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Inspect the case workflow rules",
}

var workflowStagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the case and claim workflow stages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"stages":       workflow.Stages(),
			"claim_stages": workflow.ClaimStages(),
		})
	},
}

var workflowStageCmd = &cobra.Command{
	Use:   "stage <status>",
	Short: "Resolve the workflow stage of a status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, known := workflow.ParseStatus(args[0])
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"status": status,
			"known":  known,
			"stage":  workflow.ResolveStage(args[0]),
		})
	},
}

var workflowPermissionsCmd = &cobra.Command{
	Use:   "permissions <status>",
	Short: "Resolve the actions allowed in a status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), workflow.ResolvePermissions(args[0]))
	},
}

var deadlineDate string

var workflowDeadlineCmd = &cobra.Command{
	Use:   "deadline [days]",
	Short: "Classify a deadline by days remaining or by --date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if deadlineDate != "" {
			now := time.Now()
			date, err := time.ParseInLocation("2006-01-02", deadlineDate, now.Location())
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), workflow.EvaluateDeadline(date, now))
		}

		if len(args) != 1 {
			return fmt.Errorf("days or --date is required")
		}
		days, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("days must be an integer: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), workflow.DeadlineStatus{
			DaysRemaining: days,
			Severity:      workflow.ClassifyDeadline(days),
			Label:         workflow.DeadlineLabel(days),
		})
	},
}

func init() {
	workflowDeadlineCmd.Flags().StringVar(&deadlineDate, "date", "", "Deadline date (YYYY-MM-DD)")

	workflowCmd.AddCommand(workflowStagesCmd)
	workflowCmd.AddCommand(workflowStageCmd)
	workflowCmd.AddCommand(workflowPermissionsCmd)
	workflowCmd.AddCommand(workflowDeadlineCmd)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
