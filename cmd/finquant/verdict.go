package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternarybob/finquant/internal/models"
	"github.com/ternarybob/finquant/internal/services/verdict"
)

var verdictCmd = &cobra.Command{
	Use:   "verdict",
	Short: "Capture a company page and build the verdict payload",
	Long: `Searches screener.in for the company, writes the section and FULL snapshot
artifacts, fetches the price series for the ticker and prints the combined payload.`,
	Args: cobra.NoArgs,
	RunE: runVerdict,
}

var (
	verdictName   string
	verdictTicker string
	verdictJSON   bool
)

func init() {
	verdictCmd.Flags().StringVar(&verdictName, "name", "", "Company name as typed into the screener.in search box")
	verdictCmd.Flags().StringVar(&verdictTicker, "ticker", "", "Ticker symbol (IRFC, IRFC.NS, NSE:IRFC, 543257)")
	verdictCmd.Flags().BoolVar(&verdictJSON, "json", false, "Print the payload as JSON")
	_ = verdictCmd.MarkFlagRequired("name")
	_ = verdictCmd.MarkFlagRequired("ticker")
}

func runVerdict(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.Close()

	payload, err := application.Builder.Build(cmd.Context(), models.VerdictRequest{
		ScreenerName: verdictName,
		Ticker:       verdictTicker,
	})
	if err != nil {
		if verdict.IsDocumentFailure(err) {
			return fmt.Errorf("company page for %q unavailable, nothing was saved: %w", verdictName, err)
		}
		return err
	}

	if verdictJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(payload)
	}

	fmt.Printf("\n%s (%s)\n", payload.Metadata.Company, payload.Ticker)
	fmt.Printf("Captured: %s\n", payload.Metadata.ScrapedAt)
	fmt.Printf("Source:   %s\n\n", payload.Metadata.URL)
	fmt.Println(payload.TechnicalReport)
	fmt.Println()
	fmt.Println("Saved files:")
	for _, path := range payload.SavedFiles {
		fmt.Printf("  %s\n", path)
	}
	if payload.TechnicalPath != "" {
		fmt.Printf("  %s\n", payload.TechnicalPath)
	}
	fmt.Println(strings.Repeat("-", 40))
	return nil
}
