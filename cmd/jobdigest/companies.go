package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List all configured companies",
	Long:  "Reads the config and prints a table of all configured company boards.",
	RunE:  runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

var (
	companyHeaderStyle   = lipgloss.NewStyle().Bold(true)
	companyEnabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))  // green
	companyDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // dim gray
)

func runCompanies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(companyHeaderStyle.Render(fmt.Sprintf("%-25s %-17s %-20s %s", "Company", "ATS", "Board", "Status")))

	enabled, disabled := 0, 0
	for _, c := range cfg.Companies {
		status := companyEnabledStyle.Render("enabled")
		if !c.Enabled {
			status = companyDisabledStyle.Render("disabled")
			disabled++
		} else {
			enabled++
		}
		fmt.Printf("%-25s %-17s %-20s %s\n", c.Name, c.ATS, c.Board, status)
	}

	fmt.Printf("\nTotal: %d companies (%d enabled, %d disabled)\n", len(cfg.Companies), enabled, disabled)
	return nil
}
