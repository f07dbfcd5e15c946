package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ternarybob/finquant/internal/services/market"
)

var marketCmd = &cobra.Command{
	Use:   "market [ticker]",
	Short: "Print the 30-day price summary for a ticker",
	Long:  `Fetches the trailing daily close series and prints the technical report. Nothing is written to disk.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runMarket,
}

func runMarket(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.Close()

	series, err := application.Market.Fetch(cmd.Context(), args[0])
	if err != nil {
		fmt.Println(market.Unavailable(args[0], err))
		return err
	}

	fmt.Println(market.RenderReport(series))
	return nil
}
