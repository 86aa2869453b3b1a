package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"esgrank/cmd"
	"esgrank/internal"

	"github.com/spf13/cobra"
)

var (
	tickersFlag string
	allFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "ingest [tickers]",
	Short: "Fetch and store ESG reference data for NSE tickers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		deps, err := cmd.InitializeDependencies()
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(deps)

		tickers := splitTickers(tickersFlag)
		if len(args) > 0 {
			tickers = append(tickers, splitTickers(args[0])...)
		}
		if allFlag {
			for _, entry := range deps.ApiHandler.IngestHandler.Catalog.Entries() {
				tickers = append(tickers, entry.Symbol)
			}
		}
		if len(tickers) == 0 {
			return fmt.Errorf("nothing to ingest: pass a ticker list or --all")
		}

		report, err := deps.ApiHandler.IngestHandler.Ingest(context.Background(), tickers)
		if err != nil {
			return err
		}

		internal.Pprint(report)
		return nil
	},
}

func splitTickers(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func main() {
	rootCmd.Flags().StringVar(&tickersFlag, "tickers", "", "comma-separated tickers, e.g. RELIANCE.NS,TCS.NS")
	rootCmd.Flags().BoolVar(&allFlag, "all", false, "ingest every symbol in the embedded catalog")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
