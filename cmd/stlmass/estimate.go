package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mastercraft/stlmass/pkg/analysis"
	"github.com/mastercraft/stlmass/pkg/materials"
	"github.com/mastercraft/stlmass/pkg/stl"
)

var (
	estimateMaterial string
	estimateDensity  float64
	estimateAbs      bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [file]",
	Short: "Estimate the enclosed volume and mass of an STL model",
	Long: `Decode a binary STL file, compute its enclosed volume and estimate its
mass for the chosen material. The volume is signed: a negative result
means the mesh is wound inside-out.`,
	Args: cobra.ExactArgs(1),
	Run:  runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVarP(&estimateMaterial, "material", "m", "PLA", "Material name from the catalog")
	estimateCmd.Flags().Float64VarP(&estimateDensity, "density", "d", -1, "Density in g/cm³, overriding the material catalog")
	estimateCmd.Flags().BoolVar(&estimateAbs, "abs", false, "Report unsigned magnitudes")
}

func runEstimate(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	density := estimateDensity
	materialName := "custom"
	if !cmd.Flags().Changed("density") {
		material, err := materials.ByName(materials.BuiltIn(), estimateMaterial)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		density = material.Density
		materialName = material.Name
	}

	estimate, err := analysis.EstimateMass(model, density)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	volume := estimate.VolumeCm3
	mass := estimate.MassGrams
	if estimateAbs {
		volume = estimate.AbsVolumeCm3()
		mass = estimate.AbsMassGrams()
	}

	fmt.Println("Mass Estimate")
	fmt.Println("=============")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Triangles: %d\n", estimate.Triangles)
	fmt.Printf("Material: %s (%.3f g/cm³)\n\n", materialName, density)

	fmt.Printf("Volume: %.6f cm³\n", volume)
	fmt.Printf("Mass: %.6f g\n", mass)

	if estimate.VolumeCm3 < 0 && !estimateAbs {
		fmt.Println("\nNote: negative volume indicates inverted facet winding.")
	}
}
