package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chairbid",
	Short: "Appointment booking and slot auctions for service businesses",
	Long: `chairbid runs the booking API: businesses publish appointment slots,
customers book them at a fixed price or bid on auction slots, and providers
negotiate with counter-offers until one bid is accepted.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
