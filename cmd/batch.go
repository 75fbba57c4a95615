package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamdem/biogate/internal/verify"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Verify a manifest of sample pairs",
	Long: `Run every attempt listed in a YAML manifest and print a summary.
The manifest is a list of entries with "face" and "voice" sample paths.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

type batchEntry struct {
	Face  string `yaml:"face"`
	Voice string `yaml:"voice"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	var entries []batchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("manifest %s lists no attempts", args[0])
	}

	sys, err := buildSystem()
	if err != nil {
		return err
	}
	defer sys.Close()

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetDescription("Verifying"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("attempts"),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)

	accepted := 0
	byReason := map[string]int{}
	for _, entry := range entries {
		report := sys.orchestrator.Run(context.Background(),
			verify.Sample{Path: entry.Face},
			verify.Sample{Path: entry.Voice},
		)
		if report.Outcome.Accepted {
			accepted++
		}
		byReason[string(report.Outcome.Reason)]++
		bar.Add(1)
	}

	fmt.Printf("\n\n%d/%d attempts accepted\n", accepted, len(entries))
	for reason, count := range byReason {
		fmt.Printf("  %-18s %d\n", reason, count)
	}
	return nil
}
