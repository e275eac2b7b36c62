package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/domain/models"
	domainsvcs "github.com/ghuser/wardrobe/services/wardrobe/domain/services"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup document of the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withCatalog(cmd.Context(), func(c *appsvcs.CatalogService) error {
				doc := c.Export(cmd.Context())
				if out == "" || out == "-" {
					return writeJSON(cmd.OutOrStdout(), doc)
				}
				return writeFile(out, doc)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func writeFile(path string, doc domainsvcs.ExportDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeJSON(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the catalog with a backup document",
		Long: `Replaces every item and outfit with the content of the document.
Vocabulary lists missing from the document reset to their defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			return opts.withCatalog(cmd.Context(), func(c *appsvcs.CatalogService) error {
				if err := c.Import(cmd.Context(), data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d items and %d outfits\n",
					len(c.Items(cmd.Context())), len(c.Outfits(cmd.Context())))
				return nil
			})
		},
	}
}

func newStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withCatalog(cmd.Context(), func(c *appsvcs.CatalogService) error {
				st, err := c.Statistics(cmd.Context())
				if err != nil {
					return err
				}
				if opts.format == "json" {
					return writeJSON(cmd.OutOrStdout(), st)
				}
				printStats(cmd.OutOrStdout(), st)
				return nil
			})
		},
	}
}

func printStats(w io.Writer, st domainsvcs.Stats) {
	fmt.Fprintf(w, "Items:              %d\n", st.TotalItems)
	fmt.Fprintf(w, "Outfits:            %d\n", st.TotalOutfits)
	fmt.Fprintf(w, "Most used color:    %s\n", st.MostUsedColor)
	fmt.Fprintf(w, "Most used category: %s\n", st.MostUsedCategory)
	printDistribution(w, "Colors", st.ColorDistribution)
	printDistribution(w, "Categories", st.CategoryDistribution)
	if len(st.MostWorn) > 0 {
		fmt.Fprintln(w, "Most worn:")
		for _, it := range st.MostWorn {
			fmt.Fprintf(w, "  %-30s %d\n", it.Name, it.UsageCount)
		}
	}
}

func printDistribution(w io.Writer, title string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-30s %d\n", k, dist[k])
	}
}

func newSuggestCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a color-coordinated outfit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withCatalog(cmd.Context(), func(c *appsvcs.CatalogService) error {
				items, err := c.SuggestOutfit(cmd.Context())
				if err != nil {
					return err
				}
				if opts.format == "json" {
					return writeJSON(cmd.OutOrStdout(), items)
				}
				for _, it := range items {
					fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-12s %s\n", it.Name, it.Category, it.Color)
				}
				return nil
			})
		},
	}
}

func newResetCommand(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every item and outfit and restore the default vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}
			return opts.withCatalog(cmd.Context(), func(c *appsvcs.CatalogService) error {
				if err := c.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "catalog reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newVocabCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List or edit the category, color and tag vocabularies",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [categories|colors|tags]",
		Short: "Print vocabulary values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withCatalog(cmd.Context(), func(c *appsvcs.CatalogService) error {
				v := c.Vocabulary(cmd.Context())
				kinds := []models.VocabularyKind{models.KindCategories, models.KindColors, models.KindTags}
				if len(args) == 1 {
					k, err := models.ParseVocabularyKind(args[0])
					if err != nil {
						return err
					}
					kinds = []models.VocabularyKind{k}
				}
				if opts.format == "json" {
					out := make(map[models.VocabularyKind][]string, len(kinds))
					for _, k := range kinds {
						out[k] = v.List(k)
					}
					return writeJSON(cmd.OutOrStdout(), out)
				}
				for _, k := range kinds {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, strings.Join(v.List(k), ", "))
				}
				return nil
			})
		},
	})

	cmd.AddCommand(newVocabEditCommand(opts, "add", "Add a vocabulary value", "added", (*appsvcs.CatalogService).AddVocabulary))
	cmd.AddCommand(newVocabEditCommand(opts, "remove", "Remove a vocabulary value", "removed", (*appsvcs.CatalogService).RemoveVocabulary))

	return cmd
}

type vocabEdit func(c *appsvcs.CatalogService, ctx context.Context, kind models.VocabularyKind, value string) (bool, error)

func newVocabEditCommand(opts *rootOptions, use, short, verb string, apply vocabEdit) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <categories|colors|tags> <value>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withCatalog(cmd.Context(), func(c *appsvcs.CatalogService) error {
				changed, err := apply(c, cmd.Context(), models.VocabularyKind(args[0]), args[1])
				if err != nil {
					return err
				}
				result := verb
				if !changed {
					result = "unchanged"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %q\n", result, args[1])
				return nil
			})
		},
	}
}
