package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mastercraft/stlmass/pkg/materials"
)

var materialsDB string

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the material catalog",
	Long:  "Print the known 3D-printing materials and their densities in g/cm³.",
	Args:  cobra.NoArgs,
	Run:   runMaterials,
}

func init() {
	rootCmd.AddCommand(materialsCmd)

	materialsCmd.Flags().StringVar(&materialsDB, "db", "", "Read the catalog from a sqlite database instead of the built-in table")
}

func runMaterials(cmd *cobra.Command, args []string) {
	catalog := materials.BuiltIn()

	if materialsDB != "" {
		store, err := materials.Open(materialsDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		catalog, err = store.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Material Catalog")
	fmt.Println("================")
	for _, m := range catalog {
		fmt.Printf("%3d  %-16s %8.3f g/cm³\n", m.ID, m.Name, m.Density)
	}
}
