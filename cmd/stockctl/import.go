package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apoteket/stocktake-backend/internal/modules/catalog"
	"github.com/apoteket/stocktake-backend/internal/platform/database"
)

var importDir string

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Ingest stock export files (CSV or XLSX) into the catalog",
	Long: `Import parses stock export files and stores them as uploaded files
with their products, exactly as an upload through the web UI would.
Files are given as arguments, or discovered in --dir.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "", "directory to scan for .csv/.xlsx files")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	paths := args
	if importDir != "" {
		discovered, err := discoverExports(importDir)
		if err != nil {
			return err
		}
		paths = append(paths, discovered...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files to import: pass file arguments or --dir")
	}

	db, err := database.NewPostgresClient()
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.InitSchema(db); err != nil {
		return err
	}

	service := catalog.NewService(catalog.NewPostgresRepository(db))

	failures := 0
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failures++
			continue
		}
		res, err := service.IngestUpload(cmd.Context(), filepath.Base(path), content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failures++
			continue
		}
		fmt.Printf("OK   %s: location %s, %d product(s), file id %s\n",
			path, res.Location, res.ProductCount, res.FileID)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d file(s) failed to import", failures, len(paths))
	}
	return nil
}

func discoverExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
