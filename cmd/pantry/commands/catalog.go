package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moolen/pantry/internal/catalog"
)

var (
	catalogPath string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or scaffold the recipe catalog",
}

var catalogInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the built-in catalog to a YAML file",
	Long: `Write the built-in recipe catalog to a YAML file as a starting
point for a custom catalog. Pass the file to the other commands with
--catalog.`,
	Args: cobra.ExactArgs(1),
	Run:  runCatalogInit,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [recipe]",
	Short: "List the catalog or show one recipe in detail",
	Args:  cobra.MaximumNArgs(1),
	Run:   runCatalogShow,
}

func init() {
	catalogShowCmd.Flags().StringVar(&catalogPath, "catalog", getEnv("PANTRY_CATALOG", ""), "Path to a YAML recipe catalog (defaults to the built-in catalog)")

	catalogCmd.AddCommand(catalogInitCmd)
	catalogCmd.AddCommand(catalogShowCmd)
}

func runCatalogInit(cmd *cobra.Command, args []string) {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		HandleError(fmt.Errorf("%s already exists", path), "Refusing to overwrite")
	}

	if err := catalog.Default().WriteFile(path); err != nil {
		HandleError(err, "Failed to write catalog")
	}
	fmt.Printf("Wrote %d recipes to %s\n", catalog.Default().Len(), path)
}

func runCatalogShow(cmd *cobra.Command, args []string) {
	cat, err := catalog.LoadOrDefault(catalogPath)
	if err != nil {
		HandleError(err, "Failed to load catalog")
	}

	if len(args) == 1 {
		recipe, ok := cat.Get(args[0])
		if !ok {
			HandleError(fmt.Errorf("recipe %q not found, available: %s", args[0], strings.Join(cat.Names(), ", ")), "Unknown recipe")
		}
		printRecipe(recipe)
		return
	}

	for _, recipe := range cat.Recipes() {
		fmt.Printf("%-28s $%6.2f  %s\n", recipe.Name, recipe.TotalCost(), joinTags(recipe.Tags))
	}
	fmt.Printf("\n%d recipes\n", cat.Len())
}

func printRecipe(r catalog.Recipe) {
	fmt.Printf("%s\n", r.Name)
	if len(r.Tags) > 0 {
		fmt.Printf("Tags: %s\n", joinTags(r.Tags))
	}
	fmt.Println("Ingredients:")
	for _, ing := range r.Ingredients {
		fmt.Printf("  %-20s %g %-8s $%.2f\n", ing.Item, ing.Quantity, ing.Unit, ing.Price)
	}
	fmt.Printf("Total: $%.2f\n", r.TotalCost())
}

func joinTags(tags []catalog.Tag) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = string(tag)
	}
	return strings.Join(parts, ", ")
}
