package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the story catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Report dangling story references",
		RunE:  runCatalogValidate,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stories by series and characters by role",
		RunE:  runCatalogList,
	})
	return cmd
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	store, _, err := loadCatalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	issues := store.Get().Validate()
	if len(issues) == 0 {
		fmt.Fprintln(out, "No issues found.")
		return nil
	}
	fmt.Fprintf(out, "Issues (%d):\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}
	return fmt.Errorf("catalog validation found %d issues", len(issues))
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, _, err := loadCatalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	cat := store.Get()

	for _, group := range cat.BySeries() {
		fmt.Fprintf(out, "%s\n", group.Name)
		for _, s := range group.Stories {
			marker := ""
			if s.Featured {
				marker = " *"
			}
			fmt.Fprintf(out, "  %-14s %s%s\n", s.ID, s.Title, marker)
		}
	}

	fmt.Fprintf(out, "\nCharacters (%d)\n", len(cat.Characters()))
	for _, c := range cat.Characters() {
		fmt.Fprintf(out, "  %-22s %s (%s)\n", c.ID, c.Name, c.Role)
	}
	return nil
}
