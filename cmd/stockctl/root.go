package main

import (
	"github.com/spf13/cobra"

	"github.com/apoteket/stocktake-backend/internal/platform/config"
)

var locationsFile string

var rootCmd = &cobra.Command{
	Use:   "stockctl",
	Short: "Operational CLI for the pharmacy stocktake backend",
	Long: `stockctl manages the stocktake backend from the command line.

It talks directly to the database configured via DATABASE_URL, so bulk
imports do not need the API server to be running.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()
		return config.LoadLocations(locationsFile)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&locationsFile, "locations", "locations.yaml",
		"path to the location taxonomy file")
}
