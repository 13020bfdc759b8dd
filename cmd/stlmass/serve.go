package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mastercraft/stlmass/internal/config"
	"github.com/mastercraft/stlmass/internal/server"
	"github.com/mastercraft/stlmass/pkg/materials"
	"github.com/mastercraft/stlmass/pkg/watcher"
)

var serveConfig string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload and estimation service",
	Long: `Start an HTTP server accepting STL uploads on /api/calculate and
returning volume, mass and a rendered preview image.`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to a YAML config file")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(serveConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := materials.Open(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.MaterialOverrides != "" {
		if err := store.ApplyOverrides(cfg.MaterialOverrides); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Pick up density edits without a restart.
		fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer fw.Close()

		err = fw.Watch(cfg.MaterialOverrides, func(path string) {
			if err := store.ApplyOverrides(path); err != nil {
				log.Printf("failed to reload overrides: %v", err)
				return
			}
			log.Printf("reloaded material overrides from %s", path)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fw.Start()
	}

	s, err := server.New(cfg, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := s.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
