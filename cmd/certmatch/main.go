// Package main provides the entry point for the CertMatch recommendation service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "certmatch",
	Short: "CertMatch recommendation and matching service",
	Long:  "CertMatch recommends competency standards through a grounded chat interface and ranks candidate profiles against structured matching criteria via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
