package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "tagdeck",
	Short:         "Tag-aware song catalog for MPD listings",
	Long:          `tagdeck ingests MPD song listings, caches them locally and renders songs as JSON using the configured tag columns.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/tagdeck/config.yaml)")

	rootCmd.AddCommand(ingestCmd, listCmd, showCmd, exportCmd, tagsCmd, configCmd, cacheCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
