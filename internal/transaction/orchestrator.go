// Package transaction sequences one authentication pass: face verification,
// voice verification, decision fusion and, on success, a product
// recommendation.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kamdem/biogate/internal/database"
	"github.com/kamdem/biogate/internal/fuse"
	"github.com/kamdem/biogate/internal/recommend"
	"github.com/kamdem/biogate/internal/verify"
)

// State is a stage of the transaction state machine. Every transaction
// walks the full sequence exactly once; there are no retries and no
// shortcuts on failure.
type State string

const (
	StateStart         State = "START"
	StateFaceVerified  State = "FACE_VERIFIED"
	StateVoiceVerified State = "VOICE_VERIFIED"
	StateDecided       State = "DECIDED"
	StateReported      State = "REPORTED"
)

// Report is the transaction's return value and the only thing that
// outlives it.
type Report struct {
	ID             uuid.UUID                 `json:"id"`
	Face           verify.Result             `json:"face"`
	Voice          verify.Result             `json:"voice"`
	Outcome        fuse.Outcome              `json:"outcome"`
	Recommendation *recommend.Recommendation `json:"recommendation,omitempty"`
	StartedAt      time.Time                 `json:"started_at"`
	FinishedAt     time.Time                 `json:"finished_at"`
}

// Orchestrator runs transactions against verifiers and a recommender that
// were all wired once at process start.
type Orchestrator struct {
	face        *verify.Verifier
	voice       *verify.Verifier
	recommender recommend.Recommender
	audit       database.AuditWriter
	logger      *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithAudit records every report to the given writer. Audit failures are
// logged and never alter the transaction.
func WithAudit(w database.AuditWriter) Option {
	return func(o *Orchestrator) { o.audit = w }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

func New(face, voice *verify.Verifier, recommender recommend.Recommender, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		face:        face,
		voice:       voice,
		recommender: recommend.NewSafe(recommender),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes one transaction: a single deterministic pass through the
// state machine. Both modalities are always evaluated before fusion so the
// caller learns the status of both factors. Run never fails; every failure
// mode below the fusion rule is absorbed into a rejecting outcome.
func (o *Orchestrator) Run(ctx context.Context, faceSample, voiceSample verify.Sample) Report {
	report := Report{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}
	logger := o.logger.With("transaction", report.ID.String())

	state := StateStart
	logger.Info("transaction started",
		"face_sample", faceSample.Key(),
		"voice_sample", voiceSample.Key(),
	)

	report.Face = o.runModality(ctx, logger, o.face, faceSample)
	state = o.transition(logger, state, StateFaceVerified)

	report.Voice = o.runModality(ctx, logger, o.voice, voiceSample)
	state = o.transition(logger, state, StateVoiceVerified)

	report.Outcome = fuse.Fuse(report.Face, report.Voice)
	state = o.transition(logger, state, StateDecided)

	if report.Outcome.Accepted {
		rec, _ := o.recommender.Recommend(ctx, report.Outcome.Identity)
		report.Recommendation = &rec
	}

	report.FinishedAt = time.Now()
	o.transition(logger, state, StateReported)
	logger.Info("transaction reported",
		"accepted", report.Outcome.Accepted,
		"identity", report.Outcome.Identity,
		"reason", report.Outcome.Reason,
	)

	o.recordAudit(ctx, logger, faceSample, voiceSample, report)
	return report
}

func (o *Orchestrator) runModality(ctx context.Context, logger *slog.Logger, v *verify.Verifier, sample verify.Sample) verify.Result {
	result, err := v.Verify(ctx, sample)
	if err != nil {
		// ErrResourceNotFound is the only error Verify surfaces; the result
		// is already fail-closed, so the condition is only worth logging.
		logger.Warn("sample resource not readable",
			"modality", v.Modality(),
			"sample", sample.Key(),
			"error", err,
		)
		return result
	}
	logger.Info("modality verified",
		"modality", v.Modality(),
		"accepted", result.Accepted,
		"identity", result.Identity,
	)
	return result
}

func (o *Orchestrator) transition(logger *slog.Logger, from, to State) State {
	logger.Debug("state transition", "from", string(from), "to", string(to))
	return to
}

func (o *Orchestrator) recordAudit(ctx context.Context, logger *slog.Logger, faceSample, voiceSample verify.Sample, report Report) {
	if o.audit == nil {
		return
	}

	rec := database.AuditRecord{
		ID:       report.ID.String(),
		FaceKey:  faceSample.Key(),
		VoiceKey: voiceSample.Key(),
		Accepted: report.Outcome.Accepted,
		Identity: string(report.Outcome.Identity),
		Reason:   string(report.Outcome.Reason),
	}
	if report.Recommendation != nil {
		rec.Category = report.Recommendation.Category
	}

	if err := o.audit.RecordTransaction(ctx, rec); err != nil {
		logger.Warn("failed to audit transaction", "error", err)
	}
}
