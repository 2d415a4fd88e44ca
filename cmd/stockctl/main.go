// stockctl is the operational CLI for the stocktake backend. It ingests
// stock export files straight from disk, without going through the HTTP
// API.
//
//	stockctl import file1.csv file2.xlsx   # ingest specific files
//	stockctl import --dir ./exports        # ingest every export in a directory
//	stockctl version
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
