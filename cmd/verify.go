package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamdem/biogate/internal/transaction"
	"github.com/kamdem/biogate/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Authenticate one face/voice sample pair",
	Long: `Run a single authentication transaction against a face image and a
voice recording. Both factors are always evaluated; acceptance requires
both to resolve to the same enrolled identity.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().String("face", "", "Path to the face image (required)")
	verifyCmd.Flags().String("voice", "", "Path to the voice recording (required)")
	verifyCmd.Flags().Bool("json", false, "Print the report as JSON")
	verifyCmd.MarkFlagRequired("face")
	verifyCmd.MarkFlagRequired("voice")
}

func runVerify(cmd *cobra.Command, args []string) error {
	sys, err := buildSystem()
	if err != nil {
		return err
	}
	defer sys.Close()

	report := sys.orchestrator.Run(context.Background(),
		verify.Sample{Path: mustGetString(cmd, "face")},
		verify.Sample{Path: mustGetString(cmd, "voice")},
	)

	if mustGetBool(cmd, "json") {
		return json.NewEncoder(os.Stdout).Encode(report)
	}

	printReport(report)
	return nil
}

func printReport(report transaction.Report) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Transaction %s\n", report.ID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Face:  %s\n", resultLine(report.Face.Accepted, string(report.Face.Identity)))
	fmt.Printf("Voice: %s\n", resultLine(report.Voice.Accepted, string(report.Voice.Identity)))
	fmt.Println()

	if report.Outcome.Accepted {
		fmt.Printf("AUTHENTICATION SUCCESS: %s\n", strings.ToUpper(string(report.Outcome.Identity)))
		if report.Recommendation != nil {
			fmt.Printf("Recommended category: %s\n", report.Recommendation.Category)
		}
	} else {
		fmt.Printf("AUTHENTICATION FAILED: %s\n", report.Outcome.Reason)
	}
}

func resultLine(accepted bool, id string) string {
	if accepted {
		return fmt.Sprintf("PASS (%s)", id)
	}
	return "FAIL"
}
