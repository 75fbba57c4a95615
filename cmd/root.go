package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "biogate",
	Short: "Multi-factor biometric authentication gate",
	Long: `Biogate authenticates users by fusing two independent biometric
signals, a face image and a voice sample, into a single accept/reject
decision. Accepted transactions receive a product recommendation.

When no trained classifiers are available the gate degrades to static
identity tables so that demos and tests keep working.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
