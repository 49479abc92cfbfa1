package cli

import (
	"fmt"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nikbrunner/collector/internal/organizer"
	"github.com/nikbrunner/collector/internal/storage"
	"github.com/nikbrunner/collector/internal/tree"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	v := viper.New()
	setDefaults(v)

	rootCmd := &cobra.Command{
		Use:   "collector",
		Short: "Nested-folder bookmark organizer",
		Long: dedent.Dedent(`
			collector stores bookmarks in a hierarchy of nested folders.

			Start with init-storage, which creates the database and the top-level
			"default" folder. Bookmarks created without --folder-id land there.

			Examples:
			  collector init-storage
			  collector create-folder --name Work --parent-folder-id 1
			  collector create-bookmark --title Roadmap --url http://x --folder-id 2
			  collector list-folders-bookmarks-tree`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return InitConfig(v, flags.CfgFile)
		},
	}

	setupFlags(rootCmd, flags, v)

	rootCmd.AddCommand(
		newInitStorageCommand(v),
		newCreateDefaultFolderCommand(v),
		newCreateFolderCommand(flags, v),
		newCreateBookmarkCommand(flags, v),
		newListFoldersTreeCommand(flags, v),
		newListFoldersBookmarksTreeCommand(flags, v),
		newSearchCommand(flags, v),
		newImportCommand(flags, v),
		newExportCommand(v),
		newCheckLinksCommand(flags, v),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags, v *viper.Viper) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.config/collector/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.DBPath, "db", "", "storage file (default is $HOME/.config/collector/bookmarks.db)")
	cmd.PersistentFlags().StringVar(&flags.Driver, "driver", flags.Driver, "storage driver: sqlite, json or memory")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level: debug, info, warn or error")

	bindFlagsToViper(cmd, v)
}

func bindFlagsToViper(cmd *cobra.Command, v *viper.Viper) {
	v.BindPFlag(keyStoragePath, cmd.PersistentFlags().Lookup("db"))
	v.BindPFlag(keyStorageDriver, cmd.PersistentFlags().Lookup("driver"))
	v.BindPFlag(keyLogLevel, cmd.PersistentFlags().Lookup("log-level"))
}

// withOrganizer opens the configured backend, runs fn against an organizer
// writing to the command's output, and closes the backend.
func withOrganizer(cmd *cobra.Command, v *viper.Viper, fn func(*organizer.Organizer) error) (err error) {
	logger, err := NewLogger(cmd.ErrOrStderr(), v.GetString(keyLogLevel))
	if err != nil {
		return err
	}

	cfg := storageConfig(v)
	backend, err := storage.Open(cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	logger.Debug("storage opened", "driver", cfg.Driver, "path", cfg.Path)

	var styles *tree.Styles
	if isTerminal(cmd.OutOrStdout()) {
		s := tree.DefaultStyles()
		styles = &s
	}

	return fn(organizer.New(organizer.Params{
		Backend:           backend,
		Out:               cmd.OutOrStdout(),
		Logger:            logger,
		DefaultFolderName: v.GetString(keyDefaultFolderName),
		Indent:            v.GetInt(keyIndent),
		Styles:            styles,
	}))
}
