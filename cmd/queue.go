package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/arrqueue/pkg/actions"
	"github.com/kasuboski/arrqueue/pkg/manager"
	"github.com/kasuboski/arrqueue/pkg/queue"
	"github.com/kasuboski/arrqueue/pkg/summary"

	"github.com/spf13/cobra"
)

var (
	problematicOnly bool
	serviceFilter   string
	instanceFilter  string

	actionOptions actions.Options
)

// queueCmd groups the queue commands
var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "inspect and act on the aggregated queue",
	Long:  `inspect and act on the aggregated queue`,
}

// queueListCmd prints the grouped queue
var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "list the aggregated queue",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		m := loadQueue(ctx)

		resp, err := m.Rows(ctx, manager.RowsRequest{
			Problematic: problematicOnly,
			Service:     queue.Service(serviceFilter),
			InstanceID:  instanceFilter,
		})
		if err != nil {
			log.Fatalf("failed to list queue: %v", err)
		}

		printRows(cmd.OutOrStdout(), resp)
	},
}

// queueDiagnoseCmd explains a single record
var queueDiagnoseCmd = &cobra.Command{
	Use:   "diagnose <key>",
	Short: "explain why a queue record is unhealthy",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		m := loadQueue(ctx)

		d, err := m.Diagnose(ctx, args[0])
		if err != nil {
			log.Fatalf("failed to diagnose: %v", err)
		}

		printDiagnosis(cmd.OutOrStdout(), d)
	},
}

// queueActionCmd runs an action against records
var queueActionCmd = &cobra.Command{
	Use:       "action <retry|delete|manualImport> <key>...",
	Short:     "run an action on queue records",
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{string(actions.KindRetry), string(actions.KindDelete), string(actions.KindManualImport)},
	Run: func(cmd *cobra.Command, args []string) {
		kind := actions.Kind(args[0])
		if !kind.Valid() {
			log.Fatalf("unknown action %q", args[0])
		}
		for _, key := range args[1:] {
			if _, _, _, err := queue.ParseKey(key); err != nil {
				log.Fatal(err)
			}
		}

		ctx := context.Background()
		m := loadQueue(ctx)

		opts := actionOptions
		run, err := m.Execute(ctx, manager.ActionRequest{
			Action:  kind,
			Keys:    args[1:],
			Options: &opts,
		})

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "run %s: %s (%d requested, %d targeted, %d calls)\n", run.ID, run.State, run.Requested, run.Targeted, len(run.Calls))
		if err != nil {
			log.Fatalf("action failed: %v", err)
		}
	},
}

func loadQueue(ctx context.Context) *manager.QueueManager {
	_, m, err := newQueueManager()
	if err != nil {
		log.Fatalf("failed to read configurations: %v", err)
	}

	if err := m.Refresh(ctx); err != nil {
		log.Fatalf("failed to fetch queue: %v", err)
	}
	return m
}

func printRows(w io.Writer, resp manager.RowsResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTITLE\tSTATUS\tPROGRESS\tLEFT\tSEVERITY")
	for _, row := range resp.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", row.Key, row.Title, row.StatusLabel, progressLabel(row.Progress), row.SizeLeftLabel, row.Severity)
		if row.Type != summary.RowGroup {
			continue
		}
		for _, key := range row.Keys() {
			fmt.Fprintf(tw, "  %s\t\t\t\t\t\n", key)
		}
	}
	tw.Flush()

	for _, inst := range resp.Instances {
		if inst.Error != "" {
			fmt.Fprintf(w, "%s (%s): %s\n", inst.InstanceName, inst.Service, inst.Error)
		}
	}
	fmt.Fprintf(w, "%d rows, %d records, refreshed %s\n", len(resp.Rows), resp.TotalCount, humanize.Time(resp.RefreshedAt))
}

func printDiagnosis(w io.Writer, d manager.Diagnosis) {
	fmt.Fprintf(w, "%s\n", d.Record.MediaTitle())
	fmt.Fprintf(w, "status: %s  progress: %s  size: %s\n", d.Record.Status, progressLabel(d.Progress), humanize.Bytes(uint64(max(0, d.Record.Size))))

	a := d.Analysis
	issueNames := make([]string, 0, len(a.IssueTypes))
	for _, it := range a.IssueTypes {
		issueNames = append(issueNames, string(it))
	}
	fmt.Fprintf(w, "severity: %s  issues: %s\n", a.Severity, strings.Join(issueNames, ", "))
	if a.RecommendedAction != nil {
		fmt.Fprintf(w, "recommended: %s\n", *a.RecommendedAction)
	}
	if len(d.Rules) > 0 {
		fmt.Fprintf(w, "matched rules: %s\n", strings.Join(d.Rules, ", "))
	}

	for _, line := range d.Lines {
		suffix := ""
		if line.Count > 1 {
			suffix = fmt.Sprintf(" (x%d)", line.Count)
		}
		fmt.Fprintf(w, "  [%s] %s%s\n", line.Tone, line.Text, suffix)
	}
}

func progressLabel(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *p)
}

func init() {
	queueListCmd.Flags().BoolVar(&problematicOnly, "problematic", false, "only show records with detected issues")
	queueListCmd.Flags().StringVar(&serviceFilter, "service", "", "only show records from sonarr or radarr")
	queueListCmd.Flags().StringVar(&instanceFilter, "instance", "", "only show records from this instance id")

	defaults := actions.DefaultOptions()
	queueActionCmd.Flags().BoolVar(&actionOptions.RemoveFromClient, "remove-from-client", defaults.RemoveFromClient, "remove the download from the download client")
	queueActionCmd.Flags().BoolVar(&actionOptions.Blocklist, "blocklist", defaults.Blocklist, "blocklist the release")
	queueActionCmd.Flags().BoolVar(&actionOptions.ChangeCategory, "change-category", defaults.ChangeCategory, "change the download client category instead of removing")
	queueActionCmd.Flags().BoolVar(&actionOptions.Search, "search", defaults.Search, "search for a replacement after removing")

	queueCmd.AddCommand(queueListCmd, queueDiagnoseCmd, queueActionCmd)
	rootCmd.AddCommand(queueCmd)
}
