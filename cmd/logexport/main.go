// Command logexport reads log records persisted in a bbolt store and prints
// or exports them.
//
//	logexport show   --db logs.db --app shop --level error [--json]
//	logexport export --db logs.db --app shop --out ./exports
//	logexport keys   --db logs.db
//	logexport clear  --db logs.db --app shop
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipp01105/logfacade/core"
	"github.com/philipp01105/logfacade/export"
	"github.com/philipp01105/logfacade/formatter"
	"github.com/philipp01105/logfacade/logger"
	"github.com/philipp01105/logfacade/sink/storagesink"
)

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "logexport",
		Short:        "Inspect and export persisted log records",
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().String("db", "logs.db", "bbolt database holding persisted records")
	rootCmd.PersistentFlags().String("app", "", "application name (default: from --config or \"application\")")
	rootCmd.PersistentFlags().String("config", "", "YAML logging config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print persisted records as text",
		RunE: func(cmd *cobra.Command, args []string) error {
			levels, err := levelsFlag(cmd)
			if err != nil {
				return err
			}
			l, closeFn, err := openLogger(cmd, true, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				f := formatter.NewJSONFormatter(formatter.Config{})
				for _, rec := range l.Records(levels...) {
					if err := f.FormatTo(&rec, cmd.OutOrStdout()); err != nil {
						return err
					}
				}
				return nil
			}

			text := l.RenderText(levels...)
			if text == "" {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	showCmd.Flags().StringSlice("level", nil, "only show these levels (repeatable)")
	showCmd.Flags().Bool("json", false, "print one JSON object per record")

	exportCmd := &cobra.Command{
		Use:   "export [filename]",
		Short: "Write persisted records to a text file, or to stdout when filename is -",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filename string
			if len(args) == 1 {
				filename = args[0]
			}

			var downloader export.Downloader
			if filename == "-" {
				downloader = export.WriterDownloader{W: cmd.OutOrStdout()}
			} else {
				dir, _ := cmd.Flags().GetString("out")
				downloader = export.DirDownloader{Dir: dir}
			}

			l, closeFn, err := openLogger(cmd, true, downloader)
			if err != nil {
				return err
			}
			defer closeFn()
			return l.ExportToFile(filename)
		},
	}
	exportCmd.Flags().String("out", ".", "directory the file is written to")

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "List storage keys in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			store, err := storagesink.OpenBolt(storagesink.BoltConfig{Path: dbPath, ReadOnly: true})
			if err != nil {
				return err
			}
			defer store.Close()

			keys, err := store.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the persisted records of an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, closeFn, err := openLogger(cmd, false, nil)
			if err != nil {
				return err
			}
			defer closeFn()
			return l.Clear()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(showCmd, exportCmd, keysCmd, clearCmd, versionCmd)
	return rootCmd
}

// openLogger builds a Logger over the bbolt store named by --db. Loading the
// storage key fills the Logger's buffer with the persisted records.
func openLogger(cmd *cobra.Command, readOnly bool, d export.Downloader) (*logger.Logger, func(), error) {
	dbPath, _ := cmd.Flags().GetString("db")
	app, _ := cmd.Flags().GetString("app")
	cfgPath, _ := cmd.Flags().GetString("config")

	var opts []logger.Option
	if cfgPath != "" {
		cfg, err := logger.LoadConfigFile(cfgPath)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, cfg.Options()...)
	}

	store, err := storagesink.OpenBolt(storagesink.BoltConfig{Path: dbPath, ReadOnly: readOnly})
	if err != nil {
		return nil, nil, err
	}

	diag, err := zap.NewDevelopment()
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("create diagnostics logger: %w", err)
	}

	opts = append(opts,
		logger.WithApplicationName(app),
		logger.WithConsoleSink(false),
		logger.WithStorageSink(true),
		logger.WithStore(store),
		logger.WithDiagnostics(diag),
		logger.WithDownloader(d),
	)
	l := logger.New(opts...)

	closeFn := func() {
		_ = l.Close()
		_ = store.Close()
	}
	return l, closeFn, nil
}

func levelsFlag(cmd *cobra.Command) ([]core.Level, error) {
	names, _ := cmd.Flags().GetStringSlice("level")
	levels := make([]core.Level, 0, len(names))
	for _, name := range names {
		var lvl core.Level
		if err := lvl.UnmarshalText([]byte(name)); err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}
