package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mastercraft/stlmass/version"
)

var rootCmd = &cobra.Command{
	Use:   "stlmass",
	Short: "Estimate the printed volume and mass of STL models",
	Long: `stlmass decodes binary STL (Stereolithography) files and estimates the
enclosed volume of the model and its mass for a chosen 3D-printing
material. It can also render preview images and run as an HTTP service
accepting uploads.`,
	Version: version.GetVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
