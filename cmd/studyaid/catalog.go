package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"studyaid/internal/catalog"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the built-in drills, flashcards and tutor rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := catalog.Default()
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid catalog: %w", err)
		}
		if catalogJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		}
		printCatalog(cmd.OutOrStdout(), c)
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print the full catalog as JSON")
	rootCmd.AddCommand(catalogCmd)
}

func printCatalog(w io.Writer, c catalog.Catalog) {
	fmt.Fprintf(w, "Drills (%d)\n", len(c.Drills))
	for _, d := range c.Drills {
		fmt.Fprintf(w, "  %-24s %d choices\n", d.ID, len(d.Choices))
	}

	fmt.Fprintf(w, "Flashcards (%d)\n", len(c.Flashcards))
	for _, f := range c.Flashcards {
		fmt.Fprintf(w, "  [%s] %s\n", f.Tag, f.Front)
	}

	fmt.Fprintf(w, "Tutor rules (%d, first match wins)\n", len(c.TutorRules))
	for i, r := range c.TutorRules {
		fmt.Fprintf(w, "  %d. %s\n", i+1, strings.Join(r.Keywords, " / "))
	}
}
