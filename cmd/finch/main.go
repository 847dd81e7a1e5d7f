package main

import (
	"os"

	"finch/cmd/finch/gateway"
	"finch/cmd/finch/prune"
	"finch/cmd/finch/research"
	"finch/cmd/finch/setup"
	"finch/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	godotenv.Load()
	logger.Init()

	rootCmd := &cobra.Command{
		Use:   "finch",
		Short: "Finch is a multi-agent equity research pipeline",
	}

	rootCmd.AddCommand(research.Cmd)
	rootCmd.AddCommand(gateway.Cmd)
	rootCmd.AddCommand(setup.Cmd)
	rootCmd.AddCommand(prune.Cmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
