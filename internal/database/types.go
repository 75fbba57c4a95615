// Package database defines the storage interfaces for enrolled biometric
// templates, purchase history and the transaction audit log.
package database

import "time"

// StoredTemplate is one enrolled reference vector for a modality.
type StoredTemplate struct {
	ID        int64
	Identity  string
	Modality  string // "face" or "voice"
	Embedding []float32
	Dim       int
	CreatedAt time.Time
}

// AuditRecord is the persisted trace of one completed transaction. Auditing
// is best-effort: a failed write never alters the transaction's outcome.
type AuditRecord struct {
	ID        string // transaction UUID
	FaceKey   string
	VoiceKey  string
	Accepted  bool
	Identity  string
	Reason    string
	Category  string // empty when the transaction was rejected
	CreatedAt time.Time
}
