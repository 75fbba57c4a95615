package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamdem/biogate/internal/verify"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the canned demonstration scenarios",
	Long: `Run four canned transactions against a sample directory: an
unauthorized attempt with mismatched factors, an authorized transaction,
an attempt with an unregistered voice, and a second authorized user.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().String("samples", "samples", "Directory containing the demo images and recordings")
}

func runDemo(cmd *cobra.Command, args []string) error {
	sys, err := buildSystem()
	if err != nil {
		return err
	}
	defer sys.Close()

	dir := mustGetString(cmd, "samples")
	scenarios := []struct {
		name  string
		face  string
		voice string
	}{
		{"Unauthorized - different users", "christine normal.jpg", "roxane.wav"},
		{"Authorized - same user", "loic normal.jpg", "loic.dat.wav"},
		{"Unauthorized - unknown voice", "irene normal.jpg", "jollyy.waptt.wav"},
		{"Authorized - irene", "irene normal.jpg", "ireneeo.wav"},
	}

	for i, sc := range scenarios {
		fmt.Printf("\n%d. %s\n", i+1, sc.name)
		report := sys.orchestrator.Run(context.Background(),
			verify.Sample{Path: filepath.Join(dir, sc.face)},
			verify.Sample{Path: filepath.Join(dir, sc.voice)},
		)
		printReport(report)
	}
	return nil
}
