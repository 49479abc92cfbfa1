package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nikbrunner/collector/internal/culler"
	"github.com/nikbrunner/collector/internal/exporter"
	"github.com/nikbrunner/collector/internal/model"
	"github.com/nikbrunner/collector/internal/organizer"
	"github.com/nikbrunner/collector/internal/picker"
	"github.com/nikbrunner/collector/internal/search"
)

func newInitStorageCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "init-storage",
		Short: "Create the schema and the default folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				folder, err := org.InitStorage()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Storage ready, default folder %q has id %d\n", folder.Name, folder.ID)
				return nil
			})
		},
	}
}

func newCreateDefaultFolderCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "create-default-folder",
		Short: "Create the top-level default folder if it is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				folder, _, err := org.EnsureDefaultFolder()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), folder.ID)
				return nil
			})
		},
	}
}

func newCreateFolderCommand(flags *Flags, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-folder",
		Short: "Create a folder and print its id",
		Long: dedent.Dedent(`
			Create a folder and print its id.

			Without --parent-folder-id the folder is created at the top level.
			Folder names must be unique among their siblings.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				id, err := org.CreateFolder(organizer.CreateFolderRequest{
					Name:        flags.Name,
					Description: flags.Description,
					ParentID:    flags.ParentFolderID,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flags.Name, "name", "", "folder name")
	cmd.Flags().StringVar(&flags.Description, "description", "", "folder description")
	cmd.Flags().Int64Var(&flags.ParentFolderID, "parent-folder-id", flags.ParentFolderID, "parent folder id (default top level)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newCreateBookmarkCommand(flags *Flags, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-bookmark",
		Short: "Create a bookmark and print its id",
		Long: dedent.Dedent(`
			Create a bookmark and print its id.

			Without --folder-id the bookmark is filed in the default folder.
			Titles must be unique within a folder.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				id, err := org.CreateBookmark(organizer.CreateBookmarkRequest{
					Title:       flags.Title,
					Description: flags.Description,
					URL:         flags.URL,
					FolderID:    flags.FolderID,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flags.Title, "title", "", "bookmark title")
	cmd.Flags().StringVar(&flags.Description, "description", "", "bookmark description")
	cmd.Flags().StringVar(&flags.URL, "url", "", "bookmark URL")
	cmd.Flags().Int64Var(&flags.FolderID, "folder-id", flags.FolderID, "folder id (default folder when unset)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("url")

	return cmd
}

func newListFoldersTreeCommand(flags *Flags, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-folders-tree",
		Short: "Print every folder, indented by depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := organizer.ParseStyle(flags.Style)
			if err != nil {
				return err
			}
			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				return org.ListFoldersTree(style)
			})
		},
	}

	cmd.Flags().StringVar(&flags.Style, "style", flags.Style, "output style: text, tree, json or yaml")

	return cmd
}

func newListFoldersBookmarksTreeCommand(flags *Flags, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-folders-bookmarks-tree",
		Short: "Print every folder followed by its bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := organizer.ParseStyle(flags.Style)
			if err != nil {
				return err
			}
			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				return org.ListFoldersBookmarksTree(style)
			})
		},
	}

	cmd.Flags().StringVar(&flags.Style, "style", flags.Style, "output style: text or tree")

	return cmd
}

func newSearchCommand(flags *Flags, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search bookmark titles and print the chosen URL",
		Long: dedent.Dedent(`
			Fuzzy search bookmark titles.

			A single match prints its URL. Several matches open a picker when
			running in a terminal and are listed one per line otherwise.`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				results, err := org.Search(query)
				if err != nil {
					return err
				}
				return runSearch(cmd, flags, query, results)
			})
		},
	}

	cmd.Flags().BoolVar(&flags.Copy, "copy", false, "copy the chosen URL to the clipboard")

	return cmd
}

func runSearch(cmd *cobra.Command, flags *Flags, query string, results []search.SearchResult) error {
	out := cmd.OutOrStdout()

	var selected *model.Bookmark
	switch {
	case len(results) == 0:
		fmt.Fprintf(out, "No bookmarks found for '%s'\n", query)
		return nil

	case len(results) == 1:
		selected = results[0].Bookmark

	case isTerminal(cmd.InOrStdin()) && isTerminal(cmd.ErrOrStderr()):
		// The picker draws on stderr so stdout carries only the URL
		var err error
		selected, err = picker.Run(results, query, cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if selected == nil {
			return nil
		}

	default:
		for _, r := range results {
			fmt.Fprintf(out, "%s\t%s\t%s\n", r.FolderPath, r.Bookmark.Title, r.Bookmark.URL)
		}
		return nil
	}

	fmt.Fprintln(out, selected.URL)

	if flags.Copy {
		if err := clipboard.WriteAll(selected.URL); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}

func newImportCommand(flags *Flags, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import bookmarks from Netscape bookmark HTML",
		Long: dedent.Dedent(`
			Import bookmarks from a Netscape bookmark HTML file, as exported by
			every major browser.

			Folders that already exist are reused. Bookmarks whose URL is already
			stored are skipped.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				summary, err := org.Import(file, flags.FolderID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d bookmarks, %d folders", summary.BookmarksAdded, summary.FoldersAdded)
				if summary.BookmarksSkipped > 0 {
					fmt.Fprintf(out, " (%d duplicates skipped)", summary.BookmarksSkipped)
				}
				if rejected := summary.Rejected(); rejected > 0 {
					fmt.Fprintf(out, " (%d invalid entries rejected)", rejected)
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&flags.FolderID, "folder-id", flags.FolderID, "folder to import into (default folder when unset)")

	return cmd
}

func newExportCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export all bookmarks to Netscape bookmark HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var outputPath string
			if len(args) == 1 {
				outputPath = args[0]
			} else {
				var err error
				if outputPath, err = exporter.DefaultExportPath(); err != nil {
					return fmt.Errorf("default export path: %w", err)
				}
			}

			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				if err := writeExport(org, outputPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outputPath)
				return nil
			})
		},
	}
}

// writeExport writes the export to path. A failed close fails the export.
func writeExport(org *organizer.Organizer, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", closeErr)
		}
	}()

	return org.Export(file)
}

func newCheckLinksCommand(flags *Flags, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-links",
		Short: "Report bookmarks whose URL no longer answers",
		Long: dedent.Dedent(`
			Request every bookmark URL with HEAD (falling back to GET) and list the
			ones that are dead (404, 410) or unreachable.

			404s on --exclude-domain hosts are reported as possibly private
			rather than dead.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganizer(cmd, v, func(org *organizer.Organizer) error {
				report, err := org.CheckLinks(cmd.Context(), culler.Params{
					Concurrency:    flags.Concurrency,
					Timeout:        flags.Timeout,
					ExcludeDomains: flags.ExcludeDomains,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				var dead, unreachable int
				for _, r := range report.Results {
					switch r.Status {
					case culler.Healthy:
						continue
					case culler.Dead:
						dead++
					default:
						unreachable++
					}
					detail := r.Error
					if detail == "" {
						detail = fmt.Sprint(r.StatusCode)
					}
					fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
						r.Status, detail, report.Paths[r.Bookmark.FolderID], r.Bookmark.Title, r.Bookmark.URL)
				}
				fmt.Fprintf(out, "Checked %d bookmarks: %d dead, %d unreachable\n", len(report.Results), dead, unreachable)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "number of URLs checked in parallel")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "per-request timeout")
	cmd.Flags().StringSliceVar(&flags.ExcludeDomains, "exclude-domain", nil, "domain whose 404s may be private pages (repeatable)")

	return cmd
}
