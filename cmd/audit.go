package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/portfolio/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the admin audit trail",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent audit entries",
	RunE:  runAuditList,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete audit entries older than --older-than",
	RunE:  runAuditPrune,
}

func init() {
	auditListCmd.Flags().Int("limit", 50, "Maximum entries to show")
	auditListCmd.Flags().String("actor", "", "Only entries by this actor")
	auditPruneCmd.Flags().Duration("older-than", 90*24*time.Hour, "Age cutoff")

	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditPruneCmd)
	rootCmd.AddCommand(auditCmd)
}

func runAuditList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	actor, _ := cmd.Flags().GetString("actor")

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	entries, err := audit.NewStore(database).Query(cmd.Context(), audit.QueryFilter{ActorID: actor, Limit: limit})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit entries.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTOR\tACTION\tTARGET\tSTATUS")
	for _, e := range entries {
		status := "-"
		if e.Status != 0 {
			status = fmt.Sprint(e.Status)
		}
		fmt.Fprintf(w, "%s\t%s:%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.ActorType, e.ActorID, e.Action, e.Target, status)
	}
	return w.Flush()
}

func runAuditPrune(cmd *cobra.Command, args []string) error {
	age, _ := cmd.Flags().GetDuration("older-than")
	if age <= 0 {
		return fmt.Errorf("--older-than must be positive")
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := audit.NewStore(database).DeleteBefore(cmd.Context(), time.Now().UTC().Add(-age))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d audit entries\n", n)
	return nil
}
