package main

import (
	"github.com/RehanAli357/baby-food/services"
	"github.com/RehanAli357/baby-food/views"

	"github.com/spf13/cobra"
)

var (
	listAgeGroup string
	listSearch   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the foods matching an age group and search term",
	Long: `Prints the filtered list to the terminal.

Example:
  babyfood list --age-group "6-8 months" --search vitamin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}

		state := services.InitialViewState().
			SelectAgeGroup(listAgeGroup).
			SetSearch(listSearch)
		return views.RenderText(cmd.OutOrStdout(), catalog.FilterState(state))
	},
}

func init() {
	listCmd.Flags().StringVarP(&listAgeGroup, "age-group", "a", services.AllAgeGroups, `age group to show, or "All"`)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "text matched against food and nutrient names")
}
