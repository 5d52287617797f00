package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meal-subscriptions",
	Short: "Meal subscription scheduling service",
	Long:  "Service that turns meal-plan subscriptions into dated delivery orders, honoring weekday frequencies, restaurant closures and pauses.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
