package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/kamdem/biogate/internal/database/mock"
	"github.com/kamdem/biogate/internal/fallback"
	"github.com/kamdem/biogate/internal/fuse"
	"github.com/kamdem/biogate/internal/identity"
	"github.com/kamdem/biogate/internal/recommend"
	"github.com/kamdem/biogate/internal/verify"
)

type fakeResources struct {
	files map[string]bool
}

func (f *fakeResources) Exists(path string) bool { return f.files[path] }

func (f *fakeResources) Read(path string) ([]byte, error) {
	if !f.files[path] {
		return nil, errors.New("no such file")
	}
	return []byte{1}, nil
}

type failingRecommender struct{}

func (failingRecommender) Recommend(ctx context.Context, id identity.Identity) (recommend.Recommendation, error) {
	return recommend.Recommendation{}, errors.New("recommendation model unavailable")
}

func testOrchestrator(t *testing.T, opts ...Option) (*Orchestrator, *fakeResources) {
	t.Helper()
	reg := identity.NewRegistry([]string{"loic", "christine", "irene"}, nil)
	res := &fakeResources{files: map[string]bool{
		"loic normal.jpg":      true,
		"christine normal.jpg": true,
		"irene normal.jpg":     true,
		"loic.dat.wav":         true,
		"christine.wav":        true,
		"ireneeo.wav":          true,
		"roxane.wav":           true,
	}}

	faceTable := fallback.NewTable(map[string]string{
		"loic normal.jpg":      "loic",
		"christine normal.jpg": "christine",
		"irene normal.jpg":     "irene",
	}, reg)
	voiceTable := fallback.NewTable(map[string]string{
		"loic.dat.wav":  "loic",
		"christine.wav": "christine",
		"ireneeo.wav":   "irene",
	}, reg)

	face := verify.NewFallbackVerifier(verify.Face, faceTable, res)
	voice := verify.NewFallbackVerifier(verify.Voice, voiceTable, res)
	recommender := recommend.NewRandom(recommend.StaticCategories{"Electronics", "Clothing", "Books"})

	return New(face, voice, recommender, opts...), res
}

func TestRun_UnauthorizedUnknownVoice(t *testing.T) {
	o, _ := testOrchestrator(t)

	report := o.Run(context.Background(),
		verify.Sample{Path: "christine normal.jpg"},
		verify.Sample{Path: "roxane.wav"},
	)

	if report.Outcome.Accepted {
		t.Error("expected rejection")
	}
	if report.Outcome.Reason != fuse.ReasonVoiceFailed {
		t.Errorf("expected VOICE_FAILED, got %s", report.Outcome.Reason)
	}
	if report.Face.Identity != identity.Identity("christine") {
		t.Errorf("face should still resolve christine, got %q", report.Face.Identity)
	}
	if report.Recommendation != nil {
		t.Error("rejected transaction must not carry a recommendation")
	}
}

func TestRun_Authorized(t *testing.T) {
	o, _ := testOrchestrator(t)

	report := o.Run(context.Background(),
		verify.Sample{Path: "loic normal.jpg"},
		verify.Sample{Path: "loic.dat.wav"},
	)

	if !report.Outcome.Accepted {
		t.Fatalf("expected acceptance, got %s", report.Outcome.Reason)
	}
	if report.Outcome.Identity != identity.Identity("loic") {
		t.Errorf("expected loic, got %q", report.Outcome.Identity)
	}
	if report.Outcome.Reason != fuse.ReasonSuccess {
		t.Errorf("expected SUCCESS, got %s", report.Outcome.Reason)
	}
	if report.Recommendation == nil || report.Recommendation.Category == "" {
		t.Error("expected a non-empty recommendation")
	}
}

func TestRun_IdentityMismatch(t *testing.T) {
	o, _ := testOrchestrator(t)

	report := o.Run(context.Background(),
		verify.Sample{Path: "irene normal.jpg"},
		verify.Sample{Path: "christine.wav"},
	)

	if report.Outcome.Accepted {
		t.Error("expected rejection")
	}
	if report.Outcome.Reason != fuse.ReasonIdentityMismatch {
		t.Errorf("expected IDENTITY_MISMATCH, got %s", report.Outcome.Reason)
	}
	if report.Outcome.Identity != identity.Unknown {
		t.Errorf("mismatch must not leak an identity, got %q", report.Outcome.Identity)
	}
}

func TestRun_MissingFaceResource(t *testing.T) {
	o, _ := testOrchestrator(t)

	report := o.Run(context.Background(),
		verify.Sample{Path: "nobody.jpg"},
		verify.Sample{Path: "loic.dat.wav"},
	)

	if report.Outcome.Reason != fuse.ReasonFaceFailed {
		t.Errorf("expected FACE_FAILED, got %s", report.Outcome.Reason)
	}
	// Voice is always evaluated even when face failed.
	if !report.Voice.Accepted {
		t.Error("voice should still have been verified")
	}
}

func TestRun_RecommendationFailureDoesNotAlterOutcome(t *testing.T) {
	reg := identity.NewRegistry([]string{"loic"}, nil)
	res := &fakeResources{files: map[string]bool{"loic normal.jpg": true, "loic.dat.wav": true}}
	face := verify.NewFallbackVerifier(verify.Face,
		fallback.NewTable(map[string]string{"loic normal.jpg": "loic"}, reg), res)
	voice := verify.NewFallbackVerifier(verify.Voice,
		fallback.NewTable(map[string]string{"loic.dat.wav": "loic"}, reg), res)

	o := New(face, voice, failingRecommender{})

	report := o.Run(context.Background(),
		verify.Sample{Path: "loic normal.jpg"},
		verify.Sample{Path: "loic.dat.wav"},
	)

	if !report.Outcome.Accepted {
		t.Error("recommendation failure must not fail the transaction")
	}
	if report.Recommendation == nil || report.Recommendation.Category != recommend.PlaceholderCategory {
		t.Errorf("expected placeholder recommendation, got %+v", report.Recommendation)
	}
}

func TestRun_AuditRecorded(t *testing.T) {
	audit := mock.NewAuditLog()
	o, _ := testOrchestrator(t, WithAudit(audit))

	report := o.Run(context.Background(),
		verify.Sample{Path: "loic normal.jpg"},
		verify.Sample{Path: "loic.dat.wav"},
	)

	if len(audit.Records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(audit.Records))
	}
	rec := audit.Records[0]
	if rec.ID != report.ID.String() {
		t.Errorf("audit record ID mismatch: %s vs %s", rec.ID, report.ID)
	}
	if !rec.Accepted || rec.Identity != "loic" || rec.Reason != "SUCCESS" {
		t.Errorf("unexpected audit record: %+v", rec)
	}
	if rec.Category == "" {
		t.Error("accepted transaction should audit its category")
	}
}

func TestRun_AuditFailureIsNonFatal(t *testing.T) {
	audit := mock.NewAuditLog()
	audit.RecordError = errors.New("database down")
	o, _ := testOrchestrator(t, WithAudit(audit))

	report := o.Run(context.Background(),
		verify.Sample{Path: "loic normal.jpg"},
		verify.Sample{Path: "loic.dat.wav"},
	)

	if !report.Outcome.Accepted {
		t.Error("audit failure must not alter the outcome")
	}
}

func TestRun_DeterministicOutcome(t *testing.T) {
	o, _ := testOrchestrator(t)

	first := o.Run(context.Background(),
		verify.Sample{Path: "irene normal.jpg"},
		verify.Sample{Path: "ireneeo.wav"},
	)
	for i := 0; i < 5; i++ {
		again := o.Run(context.Background(),
			verify.Sample{Path: "irene normal.jpg"},
			verify.Sample{Path: "ireneeo.wav"},
		)
		if again.Outcome != first.Outcome {
			t.Fatalf("outcome changed between runs: %+v vs %+v", again.Outcome, first.Outcome)
		}
	}
}
