package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/tagdeck/internal/adapter"
	"github.com/mmcdole/tagdeck/internal/mediaserver/mpd"
)

var (
	ingestTimestamp int64
	tagTypesFile    string
	searchTerm      string
	clearAllCaches  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [listing]",
	Short: "Ingest an MPD song listing",
	Long: `Ingest the response of an MPD "listallinfo" command and replace the cached catalog.

The listing is read from the given file, or from stdin when omitted.

Examples:
  # Ingest a saved listing
  tagdeck ingest listallinfo.txt

  # Ingest straight from the server
  printf 'listallinfo\nclose\n' | nc localhost 6600 | tagdeck ingest`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open listing: %w", err)
			}
			defer f.Close()
			in = f
		}

		songs, err := mpd.ParseSongs(in)
		if err != nil {
			return fmt.Errorf("failed to parse listing: %w", err)
		}

		a, err := newApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		ts := ingestTimestamp
		if ts == 0 {
			ts = time.Now().Unix()
		}
		n := a.library.Ingest(songs, ts)
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d songs\n", n)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached songs as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.configureTags(nil); err != nil {
			return err
		}
		if err := a.loadCatalog(); err != nil {
			return err
		}

		data, err := a.library.ListJSON(searchTerm)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), data)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <uri>",
	Short: "Show one song including its audio format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.configureTags(nil); err != nil {
			return err
		}
		if err := a.loadCatalog(); err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), a.library.SongJSON(args[0]))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the cached catalog as a JSON array",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.loadCatalog(); err != nil {
			return err
		}
		path, err := adapter.ExpandHome(args[0])
		if err != nil {
			return err
		}
		return a.library.Export(path)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print the tag negotiation commands for the configured tags",
	Long: `Resolve the configured column and search tags against the tags the server
supports, and print the command list that restricts the server to them.

Examples:
  # Use server.tagtypes from the config
  tagdeck tags

  # Use a saved "tagtypes" response
  tagdeck tags --tagtypes tagtypes.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		allowed, err := readTagTypes(tagTypesFile)
		if err != nil {
			return err
		}

		a, err := newApp(&mpd.CommandWriter{W: cmd.OutOrStdout()})
		if err != nil {
			return err
		}
		defer a.Close()

		return a.configureTags(allowed)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configSaveCmd = &cobra.Command{
	Use:   "save [path]",
	Short: "Write the effective configuration as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := adapter.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		path := adapter.DefaultConfigFile()
		if len(args) == 1 {
			path = args[0]
		}
		if err := adapter.SaveConfig(cfg, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved config to %s\n", path)
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the song cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached songs",
	Long: `Remove the cached songs of the configured server.

With --all the whole cache directory is removed, including the caches of
other servers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if clearAllCaches {
			cfg, err := adapter.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			dir, err := adapter.ExpandHome(cfg.Store.Path)
			if err != nil {
				return err
			}
			return adapter.ClearCache(dir)
		}

		a, err := newApp(nil)
		if err != nil {
			return err
		}
		defer a.Close()

		a.store.InvalidateAll()
		a.logger.Info("cleared song cache", "server", a.cfg.Server.URL)
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared song cache")
		return nil
	},
}

func init() {
	ingestCmd.Flags().Int64Var(&ingestTimestamp, "timestamp", 0,
		"server database timestamp (default: now)")
	listCmd.Flags().StringVarP(&searchTerm, "search", "s", "",
		"only list songs whose search tags contain this text")
	tagsCmd.Flags().StringVar(&tagTypesFile, "tagtypes", "",
		"file holding the server's tagtypes response")

	cacheClearCmd.Flags().BoolVar(&clearAllCaches, "all", false,
		"remove the caches of all servers")

	configCmd.AddCommand(configSaveCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// writeJSON writes data, indented when w is a terminal
func writeJSON(w io.Writer, data []byte) error {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err == nil {
			data = buf.Bytes()
		}
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
