// Package fuse combines the two modality results into a single
// authentication outcome under a strict agreement rule.
package fuse

import (
	"github.com/kamdem/biogate/internal/identity"
	"github.com/kamdem/biogate/internal/verify"
)

// Reason explains an authentication outcome.
type Reason string

const (
	ReasonSuccess          Reason = "SUCCESS"
	ReasonFaceFailed       Reason = "FACE_FAILED"
	ReasonVoiceFailed      Reason = "VOICE_FAILED"
	ReasonBothFailed       Reason = "BOTH_FAILED"
	ReasonIdentityMismatch Reason = "IDENTITY_MISMATCH"
)

// Outcome is the fused authentication decision. It is derived
// deterministically from the pair of modality results and never persisted
// beyond the transaction.
type Outcome struct {
	Accepted bool              `json:"accepted"`
	Identity identity.Identity `json:"identity"`
	Reason   Reason            `json:"reason"`
}

// Fuse is the entire trust decision of the system: acceptance requires both
// modalities to independently resolve to a known identity and for those
// identities to agree. Rule order is fixed; the first matching rule wins.
func Fuse(face, voice verify.Result) Outcome {
	switch {
	case !face.Accepted && !voice.Accepted:
		return Outcome{Accepted: false, Identity: identity.Unknown, Reason: ReasonBothFailed}
	case !face.Accepted:
		return Outcome{Accepted: false, Identity: identity.Unknown, Reason: ReasonFaceFailed}
	case !voice.Accepted:
		return Outcome{Accepted: false, Identity: identity.Unknown, Reason: ReasonVoiceFailed}
	case face.Identity != voice.Identity:
		return Outcome{Accepted: false, Identity: identity.Unknown, Reason: ReasonIdentityMismatch}
	default:
		return Outcome{Accepted: true, Identity: face.Identity, Reason: ReasonSuccess}
	}
}
