package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"realty-inventory/core/cache"
	"realty-inventory/core/inventory"
	"realty-inventory/core/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	searchFolders []string
	searchJSON    bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [criteria...]",
	Short: "Search the inventory once",
	Long: `Syncs the configured folders and prints the matching apartments.

Criteria use key=value pairs, for example:
  realty-inventory search бюджет=100000-200000 комнаты=2 статус=свободна
  realty-inventory search price=<150k project="like house" limit=20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		q, err := search.ParseCriteria(strings.Join(args, " "))
		if err != nil {
			return err
		}

		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		inv := cache.New(s.engine, s.cfg.Folders, s.cfg.Inventory.CacheConfig(), s.logger)
		result, err := search.NewEngine(inv, s.logger).Search(ctx, q, searchFolders)
		if err != nil {
			return err
		}

		s.logger.Info("Search completed",
			zap.Int("matches", result.Total),
			zap.Strings("stale", result.StaleFolders),
			zap.Strings("partial", result.PartialFolders),
			zap.Int("failures", len(result.Failures)))

		if searchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		return printRecords(result)
	},
}

func printRecords(result *search.Result) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tROOMS\tAREA\tPRICE\tFLOOR\tSTATUS\tSOURCE")
	for _, r := range result.Records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s:%d\n",
			r.Project,
			formatRooms(r.Rooms),
			formatFloat(r.AreaSqm),
			formatFloat(r.Price),
			formatInt(r.Floor),
			r.Status,
			r.SourceFileID, r.SourceRowIndex)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d matches\n", len(result.Records), result.Total)
	for _, f := range result.Failures {
		fmt.Printf("unavailable: %s (%s): %s\n", f.Project, f.FolderID, f.Error)
	}
	for _, id := range result.StaleFolders {
		fmt.Printf("stale: %s\n", id)
	}
	return nil
}

func formatRooms(v *int) string {
	if v != nil && *v == 0 {
		return "studio"
	}
	return formatInt(v)
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// folderIDs returns the configured folder ids.
func folderIDs(folders []inventory.FolderConfig) []string {
	ids := make([]string, len(folders))
	for i, f := range folders {
		ids[i] = f.RemoteFolderID
	}
	return ids
}

func init() {
	RootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringSliceVar(&searchFolders, "folder", nil, "Restrict the search to these folder ids")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print the result as JSON")
}
