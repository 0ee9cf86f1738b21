package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"realty-inventory/core/foldersync"
	"realty-inventory/core/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [folder-id...]",
	Short: "Sync folders once and report per file",
	Long:  `Lists, downloads and parses every spreadsheet of the given folders (all configured folders by default) and prints what each file produced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		ids := args
		if len(ids) == 0 {
			ids = folderIDs(s.cfg.Folders)
		}
		byID := make(map[string]inventory.FolderConfig, len(s.cfg.Folders))
		for _, f := range s.cfg.Folders {
			byID[f.RemoteFolderID] = f
		}

		failed := 0
		for _, id := range ids {
			folder, ok := byID[id]
			if !ok {
				return fmt.Errorf("unknown folder %s", id)
			}

			snap, err := s.engine.Sync(ctx, folder, nil)
			var syncErr *foldersync.SyncFailed
			switch {
			case err == nil:
			case errors.As(err, &syncErr) && syncErr.Partial != nil:
				snap = syncErr.Partial
				failed++
			default:
				failed++
				fmt.Printf("\n=== %s (%s) ===\nFAILED: %v\n", folder.ProjectName, folder.RemoteFolderID, err)
				continue
			}
			printSyncReport(folder, snap)
		}

		s.logger.Info("Sync completed",
			zap.Int("folders", len(ids)),
			zap.Int("failed", failed),
			zap.Duration("execution_time", time.Since(startTime)))

		if failed > 0 {
			return fmt.Errorf("%d of %d folders did not sync cleanly", failed, len(ids))
		}
		return nil
	},
}

func printSyncReport(folder inventory.FolderConfig, snap *inventory.Snapshot) {
	fmt.Printf("\n=== %s (%s) ===\n", folder.ProjectName, folder.RemoteFolderID)

	byFile := snap.RecordsByFile()
	files := make([]string, 0, len(snap.SourceFileVersions))
	for id := range snap.SourceFileVersions {
		files = append(files, id)
	}
	sort.Strings(files)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tVERSION\tRECORDS\tERROR")
	for _, id := range files {
		fmt.Fprintf(w, "%s\t%s\t%d\t\n", id, snap.SourceFileVersions[id], len(byFile[id]))
	}
	for _, fe := range snap.Errors {
		fmt.Fprintf(w, "%s\t-\t%d\t%s\n", fe.FileID, len(byFile[fe.FileID]), fe.Error)
	}
	_ = w.Flush()

	fmt.Printf("Records: %d\n", len(snap.Records))
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
