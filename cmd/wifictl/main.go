package main

import (
	"fmt"
	"os"

	"github.com/benvon/wifi-api/cmd/wifictl/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:           "wifictl",
		Short:         "Operator tool for the WiFi API",
		Long:          "Inspect the effective configuration of the WiFi API and probe a running server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewCorsCmd())
	rootCmd.AddCommand(commands.NewCheckCmd())
	rootCmd.AddCommand(commands.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
