package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamdem/biogate/internal/database"
	"github.com/kamdem/biogate/internal/database/postgres"
	"github.com/kamdem/biogate/internal/feature"
	"github.com/kamdem/biogate/internal/identity"
	"github.com/kamdem/biogate/internal/verify"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Enroll a biometric template for an identity",
	Long: `Compute a template vector from a sample and store it in the
template database. Enrolled templates back the embedded nearest-neighbour
classifier when no model server is configured.`,
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)

	enrollCmd.Flags().String("identity", "", "Enrolled identity the sample belongs to (required)")
	enrollCmd.Flags().String("modality", "face", "Modality of the sample: face or voice")
	enrollCmd.Flags().String("sample", "", "Path to the sample file (required)")
	enrollCmd.MarkFlagRequired("identity")
	enrollCmd.MarkFlagRequired("sample")
}

func runEnroll(cmd *cobra.Command, args []string) error {
	sys, err := buildSystem()
	if err != nil {
		return err
	}
	defer sys.Close()

	if sys.pool == nil {
		return errors.New("enrollment requires DATABASE_URL")
	}

	id := identity.Identity(identity.Normalize(mustGetString(cmd, "identity")))
	if !sys.registry.Contains(id) {
		return fmt.Errorf("identity %q is not enrolled in the registry", id)
	}

	modality := verify.Modality(mustGetString(cmd, "modality"))
	if modality != verify.Face && modality != verify.Voice {
		return fmt.Errorf("unknown modality %q", modality)
	}

	samplePath := mustGetString(cmd, "sample")
	data, err := os.ReadFile(samplePath)
	if err != nil {
		return fmt.Errorf("failed to read sample: %w", err)
	}

	var embedding []float32
	if modality == verify.Face {
		embedding, err = feature.FaceEmbedding(data)
	} else {
		embedding, err = feature.VoiceVector(data)
	}
	if err != nil {
		return fmt.Errorf("failed to extract features: %w", err)
	}

	repo := postgres.NewTemplateRepository(sys.pool)
	templateID, err := repo.SaveTemplate(context.Background(), database.StoredTemplate{
		Identity:  string(id),
		Modality:  string(modality),
		Embedding: embedding,
	})
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	fmt.Printf("Enrolled %s template %d for %s (%d dimensions)\n",
		modality, templateID, id, len(embedding))
	return nil
}
