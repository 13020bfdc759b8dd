package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mastercraft/stlmass/pkg/preview"
	"github.com/mastercraft/stlmass/pkg/stl"
)

var (
	previewOutput string
	previewWidth  int
	previewHeight int
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render an STL model to a PNG image",
	Args:  cobra.ExactArgs(1),
	Run:   runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "preview.png", "Output PNG path")
	previewCmd.Flags().IntVar(&previewWidth, "width", 640, "Image width in pixels")
	previewCmd.Flags().IntVar(&previewHeight, "height", 480, "Image height in pixels")
}

func runPreview(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	opts := preview.Options{Width: previewWidth, Height: previewHeight}
	if err := preview.WritePNG(model, previewOutput, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering preview: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d triangles)\n", previewOutput, model.TriangleCount())
}
