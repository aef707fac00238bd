package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List the companies in the scan catalog",
	Long:  "Prints the merged company catalog (built-in registry plus config overrides).",
	RunE:  runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	companies := cfg.MergedCompanies()

	fmt.Printf("%-18s %-28s %-12s %s\n", "Key", "Company", "ATS", "Tier")
	fmt.Println(strings.Repeat("─", 64))

	api := 0
	for _, c := range companies {
		if c.HasAPI() {
			api++
		}
		fmt.Printf("%-18s %-28s %-12s %d\n", c.Key, c.Name, c.ATS, c.Tier)
	}

	fmt.Printf("\nTotal: %d companies (%d with board APIs, %d scraped)\n",
		len(companies), api, len(companies)-api)
	return nil
}
