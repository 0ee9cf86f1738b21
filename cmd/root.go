package cmd

import (
	"fmt"
	"os"

	"realty-inventory/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "realty-inventory",
	Short: "Apartment inventory sync and search",
	Long: `Realty Inventory keeps developer apartment spreadsheets in sync from
object storage or Google Drive folders and answers structured searches over them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the debug config gives readable timestamps for a CLI
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
